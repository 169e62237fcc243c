package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

var leadColumnNames = []string{
	"id", "owner_email", "category", "created_at", "name", "address", "phone", "website",
	"email", "rating", "status", "notes", "instagram", "facebook", "linkedin", "twitter",
}

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func newMockStore(t *testing.T) (*LeadStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	store, err := NewLeadStoreWithPool(mock, &seqIDGen{}, fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return store, mock
}

func storedRow(id, name, website string) []any {
	return []any{
		id, "owner@x.com", "plumbers", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		name, "1 High St", "555-0100", website,
		"", "4.5", "New", "", "", "", "", "",
	}
}

func TestFindLeadsScansRows(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM leads").
		WithArgs("owner@x.com", "plumbers").
		WillReturnRows(pgxmock.NewRows(leadColumnNames).
			AddRow(storedRow("id-1", "Acme", "https://acme.example")...))

	leads, err := store.FindLeads(context.Background(), "owner@x.com", "plumbers")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, "Acme", leads[0].Name)
	require.Equal(t, "https://acme.example", leads[0].Website)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertLeadsRechecksDuplicates(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM leads").
		WithArgs("owner@x.com", "ALL").
		WillReturnRows(pgxmock.NewRows(leadColumnNames).
			AddRow(storedRow("id-1", "Known Biz", "https://known.example")...))

	// Only the first batch entry survives: the second matches the
	// stored lead, the third matches the first entry's phone. The
	// written row carries the insert defaults for the empty fields.
	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			"id-1", "owner@x.com", "plumbers", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			"Fresh Biz", "N/A", "555-0199", "https://fresh.example",
			"", "N/A", "New", "", "", "", "", "",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	batch := []lead.Lead{
		{Name: "Fresh Biz", Phone: "555-0199", Website: "https://fresh.example"},
		{Name: "Someone Else", Website: "HTTPS://KNOWN.EXAMPLE/"},
		{Name: "Fresh Again", Phone: "555 0199"},
	}
	saved, duplicates, err := store.InsertLeads(context.Background(), "owner@x.com", "plumbers", batch)
	require.NoError(t, err)
	require.Equal(t, 1, saved)
	require.Equal(t, 2, duplicates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLeadNotFound(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM leads").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := store.DeleteLead(context.Background(), "missing")
	require.ErrorIs(t, err, lead.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryReturnsCount(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM leads").
		WithArgs("owner@x.com", "plumbers").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	count, err := store.DeleteCategory(context.Background(), "owner@x.com", "plumbers")
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs("Contacted", "id-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.UpdateStatus(context.Background(), "id-1", "Contacted"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsAggregates(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectQuery("GROUP BY category").
		WithArgs("owner@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"category", "count"}).
			AddRow("plumbers", 4).
			AddRow("bakers", 2).
			AddRow("", 1))

	stats, err := store.Stats(context.Background(), "owner@x.com")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"plumbers", "bakers"}, stats.Categories)
	require.Equal(t, 7, stats.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}
