package services

import (
	"testing"

	"medcast/internal/pagination"
	"medcast/internal/testutil"
)

func TestGetCategoryAudios(t *testing.T) {
	t.Run("matches_primary_and_subcategory_references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAudioService(db)

		parent := testutil.CreateTestCategory(t, db, nil)
		child := testutil.CreateTestCategory(t, db, &parent.ID)
		other := testutil.CreateTestCategory(t, db, nil)

		testutil.CreateTestAudio(t, db, &parent.ID, nil)
		testutil.CreateTestAudio(t, db, &other.ID, &child.ID)
		testutil.CreateTestAudio(t, db, &other.ID, nil)

		page, err := svc.GetCategoryAudios(parent.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 audio under primary, got %d", page.TotalItems)
		}

		page, err = svc.GetCategoryAudios(child.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 audio under subcategory, got %d", page.TotalItems)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAudioService(db)

		cat := testutil.CreateTestCategory(t, db, nil)
		for i := 0; i < 5; i++ {
			testutil.CreateTestAudio(t, db, &cat.ID, nil)
		}

		page, err := svc.GetCategoryAudios(cat.ID, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 5 {
			t.Errorf("expected total 5, got %d", page.TotalItems)
		}
		if len(page.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(page.Data))
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", page.TotalPages)
		}
	})
}

func TestGetAudioByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAudioService(db)

	cat := testutil.CreateTestCategory(t, db, nil)
	audio := testutil.CreateTestAudio(t, db, &cat.ID, nil)

	got, err := svc.GetAudioByID(audio.ID)
	testutil.AssertNoError(t, err)
	if got.Title != audio.Title {
		t.Errorf("expected title %q, got %q", audio.Title, got.Title)
	}

	_, err = svc.GetAudioByID("00000000-0000-0000-0000-000000000000")
	testutil.AssertAppError(t, err, "AUDIO_NOT_FOUND")
}

func TestCountByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAudioService(db)

	cat := testutil.CreateTestCategory(t, db, nil)
	child := testutil.CreateTestCategory(t, db, &cat.ID)
	empty := testutil.CreateTestCategory(t, db, nil)
	testutil.CreateTestAudio(t, db, &cat.ID, nil)
	testutil.CreateTestAudio(t, db, &cat.ID, &child.ID)

	counts, err := svc.CountByCategory()
	testutil.AssertNoError(t, err)
	if counts[cat.ID] != 2 {
		t.Errorf("expected 2 for primary, got %d", counts[cat.ID])
	}
	if counts[child.ID] != 1 {
		t.Errorf("expected 1 for subcategory, got %d", counts[child.ID])
	}
	if _, ok := counts[empty.ID]; ok {
		t.Error("expected no entry for a category without audios")
	}
}
