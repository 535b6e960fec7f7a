package directory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilter_MatchCheckSize(t *testing.T) {
	small := NewInvestor("", InvestorParams{Name: "small", CheckSize: NewCheckSize(ptr(1), ptr(5))})
	large := NewInvestor("", InvestorParams{Name: "large", CheckSize: NewCheckSize(ptr(100), nil)})
	undeclared := NewInvestor("", InvestorParams{Name: "undeclared"})
	all := []Investor{small, large, undeclared}

	assert.Len(t, NewFilter().MatchCheckSize(all), 3)

	got := NewFilter(WithCheckSize(NewCheckSize(ptr(4), ptr(10)))).MatchCheckSize(all)
	assert.Equal(t, []string{"small"}, investorNames(got))

	got = NewFilter(WithCheckSize(NewCheckSize(ptr(50), nil))).MatchCheckSize(all)
	assert.Equal(t, []string{"large"}, investorNames(got))

	seed := NewInvestor("", InvestorParams{Name: "seed", CheckSize: NewCheckSize(ptr(10_000), ptr(50_000))})
	growth := NewInvestor("", InvestorParams{Name: "growth", CheckSize: NewCheckSize(ptr(100_000), ptr(500_000))})
	got = NewFilter(WithCheckSize(NewCheckSize(ptr(40_000), ptr(200_000)))).MatchCheckSize([]Investor{seed, growth, large, undeclared})
	assert.Equal(t, []string{"seed", "growth", "large"}, investorNames(got))
}

func TestFilter_String(t *testing.T) {
	a := NewFilter(WithKeyword(" Pay "), WithSectors("Fintech", "SaaS"), WithCheckSize(NewCheckSize(ptr(5), nil)))
	b := NewFilter(WithSectors("fintech", "saas"), WithKeyword("pay"), WithCheckSize(NewCheckSize(ptr(5), nil)))
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "min_check=5&q=pay&sectors=fintech%2Csaas", a.String())
	assert.Equal(t, "", NewFilter().String())
}

func TestFilter_WithDefaultLimit(t *testing.T) {
	assert.Equal(t, 60, NewFilter().WithDefaultLimit(60).Limit(0))
	assert.Equal(t, 5, NewFilter(WithLimit(5)).WithDefaultLimit(60).Limit(0))
	assert.Equal(t, 120, NewFilter(WithLimit(-1)).Limit(120))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"fintech", "series a"}, SplitList(" fintech, ,series a,"))
	assert.Nil(t, SplitList("  "))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"fintech", "health"}, SplitList("fintech, health,"))
}

func TestInvestor_ParamsCopy(t *testing.T) {
	want := InvestorParams{
		Name:      "Priya Kapoor",
		Firm:      "Northstar Ventures",
		Sectors:   []string{"fintech", "saas"},
		Stages:    []string{"seed"},
		Geos:      []string{"india"},
		CheckSize: NewCheckSize(ptr(5), ptr(50)),
	}
	inv := NewInvestor("u-1", want)

	// Mutating the caller's slice must not leak into the entity.
	want.Sectors[0] = "changed"
	got := inv.Params()
	want.Sectors[0] = "fintech"

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(CheckSize{})); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func investorNames(in []Investor) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Name())
	}
	return out
}
