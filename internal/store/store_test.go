package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTransplant(id string, seq int64, dest string) Transplant {
	return Transplant{
		ID:        id,
		Seq:       seq,
		Dest:      dest,
		Label:     "Lights On",
		Pattern:   "Lights On",
		Frame:     -149672,
		Time:      -(83*time.Minute + 9*time.Second + 60*time.Millisecond),
		Found:     true,
		AnchorLog: 0,
		Sources:   []string{"lights_on.txt", "all.txt", "all.txt"},
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}

func TestNextSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	require.NoError(t, s.WriteTransplant(ctx, testTransplant("a", seq, "dest.txt")))

	seq, err = s.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestWriteTransplant_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := testTransplant(NewTransplantID(), 1, "dest.txt")

	require.NoError(t, s.WriteTransplant(ctx, want))

	got, err := s.GetTransplant(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteTransplant_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	tr := testTransplant("same-id", 1, "dest.txt")

	require.NoError(t, s.WriteTransplant(ctx, tr))
	tr.Label = "changed"
	require.NoError(t, s.WriteTransplant(ctx, tr))

	all, err := s.ListTransplants(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lights On", all[0].Label)
}

func TestWriteTransplant_DuplicateSeqRejected(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteTransplant(ctx, testTransplant("a", 1, "dest.txt")))
	err := s.WriteTransplant(ctx, testTransplant("b", 1, "dest.txt"))
	assert.Error(t, err)
}

func TestWriteTransplant_NilSources(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	tr := testTransplant("a", 1, "dest.txt")
	tr.Sources = nil
	tr.Found = false
	tr.AnchorLog = -1

	require.NoError(t, s.WriteTransplant(ctx, tr))
	got, err := s.GetTransplant(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Sources)
	assert.False(t, got.Found)
	assert.Equal(t, -1, got.AnchorLog)
}

func TestListTransplants_OrderAndFilter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteTransplant(ctx, testTransplant("c", 3, "one.txt")))
	require.NoError(t, s.WriteTransplant(ctx, testTransplant("a", 1, "one.txt")))
	require.NoError(t, s.WriteTransplant(ctx, testTransplant("b", 2, "two.txt")))

	all, err := s.ListTransplants(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	one, err := s.ListTransplants(ctx, "one.txt")
	require.NoError(t, err)
	require.Len(t, one, 2)
	assert.Equal(t, "a", one[0].ID)
	assert.Equal(t, "c", one[1].ID)

	none, err := s.ListTransplants(ctx, "missing.txt")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetTransplant_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.GetTransplant(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestNewTransplantID_IsV7(t *testing.T) {
	parsed, err := uuid.Parse(NewTransplantID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
