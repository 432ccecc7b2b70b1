package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const fullProfileResponse = `**1.** Ergonomic Oak Desk Chair | Handmade Comfort

**2.** A handcrafted oak desk chair with lumbar support and breathable mesh, built for long workdays.

**3.** Lumbar support, Breathable mesh back, Adjustable height, Solid oak frame, Swivel base

**4.** Oak wood, Steel, Mesh fabric, Memory foam, Aluminum

**5.** Natural oak, Walnut, Black, White, Grey

**6.** office chair, ergonomic, handmade, oak furniture, desk chair

**7.** A handcrafted ergonomic oak chair that keeps you comfortable through the longest workday.

**8.** Crafted from solid oak by experienced woodworkers, this chair blends traditional joinery with modern ergonomics. The breathable mesh back keeps air flowing while the memory foam seat cushions every hour of your day.`

func TestParseProfileFullResponse(t *testing.T) {
	profile := ParseProfile(fullProfileResponse)

	assert.Equal(t, "Ergonomic Oak Desk Chair | Handmade Comfort", profile.SEOTitle)
	assert.Equal(t, "A handcrafted oak desk chair with lumbar support and breathable mesh, built for long workdays.", profile.SEODescription)
	assert.Equal(t, []string{"Lumbar support", "Breathable mesh back", "Adjustable height", "Solid oak frame", "Swivel base"}, profile.Features)
	assert.Equal(t, []string{"Oak wood", "Steel", "Mesh fabric", "Memory foam", "Aluminum"}, profile.Materials)
	assert.Equal(t, []string{"Natural oak", "Walnut", "Black", "White", "Grey"}, profile.Colors)
	assert.Equal(t, []string{"office chair", "ergonomic", "handmade", "oak furniture", "desk chair"}, profile.Tags)
	assert.Equal(t, "A handcrafted ergonomic oak chair that keeps you comfortable through the longest workday.", profile.BasicDescription)
	assert.Contains(t, profile.DetailedDescription, "Crafted from solid oak")
}

func TestParseProfilePartialResponse(t *testing.T) {
	raw := "**1.** Short Title\n\n**2.** Short meta description.\n\n**3.** One, Two, Three"

	profile := ParseProfile(raw)

	assert.Equal(t, "Short Title", profile.SEOTitle)
	assert.Equal(t, "Short meta description.", profile.SEODescription)
	assert.Equal(t, []string{"One", "Two", "Three"}, profile.Features)

	// Missing sections degrade to empty values instead of failing.
	assert.Empty(t, profile.Materials)
	assert.Empty(t, profile.Colors)
	assert.Empty(t, profile.Tags)
	assert.Empty(t, profile.BasicDescription)
	assert.Empty(t, profile.DetailedDescription)
}

func TestSplitSections(t *testing.T) {
	sections := SplitSections("first\r\n\r\nsecond\n\n\n\nthird\n")
	assert.Equal(t, []string{"first", "second", "third"}, sections)

	assert.Empty(t, SplitSections("   \n\n  "))
}

func TestStripMarkdown(t *testing.T) {
	assert.Equal(t, "Title here", StripMarkdown("**1.** Title here"))
	assert.Equal(t, "Title here", StripMarkdown("3. **Title** here"))
	assert.Equal(t, "plain", StripMarkdown("plain"))
}

func TestParseList(t *testing.T) {
	items := ParseList("**5.** Red, Blue , , Green,Red")

	// Trimmed, empties dropped, order preserved, duplicates kept.
	assert.Equal(t, []string{"Red", "Blue", "Green", "Red"}, items)
}

func TestParseLines(t *testing.T) {
	items := ParseLines("Durable\nLightweight\nWaterproof")
	assert.Equal(t, []string{"Durable", "Lightweight", "Waterproof"}, items)

	items = ParseLines("**1.** Durable\n\n2. Lightweight\r\n")
	assert.Equal(t, []string{"Durable", "Lightweight"}, items)
}
