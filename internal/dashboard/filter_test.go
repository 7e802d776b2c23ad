package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seopilot/internal/domain"
)

func named(id, name, host string, platform domain.Platform) domain.Connection {
	c := domain.Connection{ID: id, Domain: host, Platform: platform, Status: domain.StatusConnected}
	if name != "" {
		c.DisplayName = &name
	}
	return c
}

func testSnapshot() []domain.Connection {
	poor := named("c3", "Legacy Shop", "legacy-shop.net", domain.PlatformCustom)
	poor.IssueCount = 4
	poor.Issues = issuesOf(domain.SeverityCritical, domain.SeverityCritical, domain.SeverityCritical, domain.SeverityHigh)

	fair := named("c4", "", "fixer-upper.io", domain.PlatformWix)
	fair.IssueCount = 3
	fair.Issues = issuesOf(domain.SeverityCritical, domain.SeverityCritical, domain.SeverityLow)

	return []domain.Connection{
		named("c1", "Acme Outdoors", "acme-outdoors.com", domain.PlatformShopify),   // 90 excellent
		named("c2", "Blue Bikes", "bluebikes.example", domain.PlatformWordPress),    // 90 excellent
		poor, // 100-45-10 = 45 poor
		fair, // 100-30-2 = 68 fair
	}
}

func TestFilter_EmptyMatchesEverything(t *testing.T) {
	snapshot := testSnapshot()
	out := Apply(snapshot, Filters{})
	assert.Equal(t, snapshot, out)
}

func TestFilter_TextIsCaseInsensitiveOverNameAndDomain(t *testing.T) {
	snapshot := testSnapshot()

	out := Apply(snapshot, Filters{Query: "ACME"})
	assert.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)

	// Domain matches even when the display name does not.
	out = Apply(snapshot, Filters{Query: "bluebikes"})
	assert.Len(t, out, 1)
	assert.Equal(t, "c2", out[0].ID)

	// Connections without a display name are searched by domain.
	out = Apply(snapshot, Filters{Query: "fixer"})
	assert.Len(t, out, 1)
	assert.Equal(t, "c4", out[0].ID)
}

func TestFilter_PlatformExactMatch(t *testing.T) {
	out := Apply(testSnapshot(), Filters{Platform: string(domain.PlatformShopify)})
	assert.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)

	out = Apply(testSnapshot(), Filters{Platform: FilterAll})
	assert.Len(t, out, 4)
}

func TestFilter_HealthCategory(t *testing.T) {
	out := Apply(testSnapshot(), Filters{Health: string(HealthPoor)})
	assert.Len(t, out, 1)
	assert.Equal(t, "c3", out[0].ID)

	out = Apply(testSnapshot(), Filters{Health: string(HealthExcellent)})
	assert.Len(t, out, 2)
}

// All three predicates are ANDed: every survivor passes each one, every
// excluded connection fails at least one.
func TestFilter_Conjunction(t *testing.T) {
	snapshot := testSnapshot()
	f := Filters{Query: "o", Platform: string(domain.PlatformShopify), Health: string(HealthExcellent)}

	out := Apply(snapshot, f)
	for _, c := range out {
		assert.True(t, Filters{Query: f.Query}.Match(c))
		assert.True(t, Filters{Platform: f.Platform}.Match(c))
		assert.True(t, Filters{Health: f.Health}.Match(c))
	}
	kept := map[string]bool{}
	for _, c := range out {
		kept[c.ID] = true
	}
	for _, c := range snapshot {
		if kept[c.ID] {
			continue
		}
		failed := !Filters{Query: f.Query}.Match(c) ||
			!Filters{Platform: f.Platform}.Match(c) ||
			!Filters{Health: f.Health}.Match(c)
		assert.True(t, failed, "excluded %s must fail at least one predicate", c.ID)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	snapshot := testSnapshot()
	out := Apply(snapshot, Filters{Health: string(HealthExcellent)})
	assert.Equal(t, []string{"c1", "c2"}, []string{out[0].ID, out[1].ID})
}

func TestFilter_DoesNotMutateSnapshot(t *testing.T) {
	snapshot := testSnapshot()
	before := make([]domain.Connection, len(snapshot))
	copy(before, snapshot)

	_ = Apply(snapshot, Filters{Query: "acme", Platform: string(domain.PlatformWix)})
	assert.Equal(t, before, snapshot)
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	out := Apply(testSnapshot(), Filters{Query: "no-such-store"})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFilter_UnknownPlatformValueDegrades(t *testing.T) {
	odd := named("c9", "Odd One", "odd.example", "SQUARESPACE")

	out := Apply([]domain.Connection{odd}, Filters{Platform: "SQUARESPACE"})
	assert.Len(t, out, 1, "unrecognized platforms still filter by equality")

	out = Apply([]domain.Connection{odd}, Filters{Platform: string(domain.PlatformShopify)})
	assert.Empty(t, out)
}
