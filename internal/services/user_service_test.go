package services

import (
	"testing"

	"medcast/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Editor@MedCast.example", "secret123", "Editor")
		testutil.AssertNoError(t, err)

		if user.Email != "editor@medcast.example" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.Password == "secret123" {
			t.Error("password must be stored hashed")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "secret123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("editor@medcast.example", "secret123", "Editor")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("EDITOR@medcast.example", "other456", "Other")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestGetUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user := testutil.CreateTestUser(t, db)

	got, err := svc.GetUserByEmail(user.Email)
	testutil.AssertNoError(t, err)
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}

	_, err = svc.GetUserByEmail("nobody@medcast.example")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")

	db.Model(user).Update("is_active", false)
	_, err = svc.GetUserByEmail(user.Email)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success_records_login_time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)

		got, err := svc.AttemptLogin(user.Email, "password123")
		testutil.AssertNoError(t, err)
		if got.LastLoginAt == nil {
			t.Error("expected last login time to be recorded")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.AttemptLogin(user.Email, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_maps_to_invalid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("nobody@medcast.example", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user := testutil.CreateTestUser(t, db)

	err := svc.StoreRefreshTokenHash(user.ID, "digest-1")
	testutil.AssertNoError(t, err)

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "digest-1" {
		t.Errorf("expected stored digest, got %q", hash)
	}
}
