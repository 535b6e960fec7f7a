package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/store"
)

func seeded(t *testing.T) (StartupStore, InvestorStore) {
	t.Helper()
	db := newTestDB(t)
	f, err := DefaultFixture()
	require.NoError(t, err)
	_, err = Seed(context.Background(), db, f)
	require.NoError(t, err)
	return NewStartupStore(db), NewInvestorStore(db)
}

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name())
	}
	return out
}

func TestStartupSearch(t *testing.T) {
	ctx := context.Background()
	startups, _ := seeded(t)

	tests := []struct {
		name   string
		filter directory.Filter
		want   []string
	}{
		{"keyword is case-insensitive", directory.NewFilter(directory.WithKeyword("KIRANA")), []string{"LumenPay"}},
		{"keyword matches location", directory.NewFilter(directory.WithKeyword("pune")), []string{"KisanLink"}},
		{"sector disjunction", directory.NewFilter(directory.WithSectors("fintech", "agritech")), []string{"KisanLink", "LumenPay"}},
		{"categories conjoin", directory.NewFilter(directory.WithSectors("fintech"), directory.WithStages("pre-seed")), []string{}},
		{"geo city", directory.NewFilter(directory.WithGeos("Bengaluru")), []string{"LumenPay"}},
		{"geo region", directory.NewFilter(directory.WithGeos("india")), []string{"KisanLink", "LumenPay"}},
		{"geo disjunction", directory.NewFilter(directory.WithGeos("pune", "singapore")), []string{"KisanLink"}},
		{"like wildcards are literal", directory.NewFilter(directory.WithKeyword("%")), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := startups.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestStartupSearch_Limit(t *testing.T) {
	startups, _ := seeded(t)
	got, err := startups.Search(context.Background(), directory.NewFilter(directory.WithLimit(1)))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestInvestorSearch(t *testing.T) {
	ctx := context.Background()
	_, investors := seeded(t)

	tests := []struct {
		name   string
		filter directory.Filter
		want   []string
	}{
		{"all", directory.NewFilter(), []string{"Priya Kapoor", "Rohan Iyer", "Meera Shah"}},
		{"sector element match", directory.NewFilter(directory.WithSectors("fintech")), []string{"Priya Kapoor", "Meera Shah"}},
		{"partial sector does not match", directory.NewFilter(directory.WithSectors("fin")), []string{}},
		{"stage with space", directory.NewFilter(directory.WithStages("Series A")), []string{"Meera Shah"}},
		{"keyword over firm", directory.NewFilter(directory.WithKeyword("harvest")), []string{"Rohan Iyer"}},
		{"geo and sector", directory.NewFilter(directory.WithGeos("india"), directory.WithSectors("climate")), []string{"Rohan Iyer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := investors.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestInvestorStore_LinkedUsers(t *testing.T) {
	_, investors := seeded(t)

	got, err := investors.LinkedUsers(context.Background(), []string{
		"3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c01",
		"3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c02",
		"missing",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c01": "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e03",
	}, got)
}

func TestInvestorStore_RoundTripsCheckSize(t *testing.T) {
	_, investors := seeded(t)

	got, err := investors.FindOne(context.Background(), directory.WithUserID("7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e03"))
	require.NoError(t, err)
	lo, ok := got.CheckSize().Min()
	assert.True(t, ok)
	assert.Equal(t, int64(5000000), lo)
	assert.Equal(t, []string{"fintech", "saas"}, got.Sectors())
}

func TestInvestorStore_KeepsListCasing(t *testing.T) {
	ctx := context.Background()
	_, investors := seeded(t)

	saved, err := investors.Save(ctx, directory.NewInvestor("", directory.InvestorParams{
		Name:    "Kavya Rao",
		Sectors: []string{"SaaS", "DeepTech"},
		Geos:    []string{"South India"},
	}))
	require.NoError(t, err)

	got, err := investors.FindOne(ctx, store.WithID(saved.ID()))
	require.NoError(t, err)
	assert.Equal(t, []string{"SaaS", "DeepTech"}, got.Sectors())

	found, err := investors.Search(ctx, directory.NewFilter(directory.WithSectors("deeptech"), directory.WithGeos("SOUTH INDIA")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Kavya Rao"}, names(found))
}
