package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/selorm/prodscribe/models"
)

// ErrUnknownField rejects generation targets outside the supported set. This
// is caller-input validation, raised before any external call.
var ErrUnknownField = errors.New("field is not supported for generation")

// Style carries caller-supplied options that vary a prompt's instructions
// without changing its structure.
type Style struct {
	Tone     string
	Length   string
	Audience string
	Keywords []string

	Background string
	Lighting   string
	Angle      string
}

func (s Style) tone() string {
	if s.Tone == "" {
		return "professional"
	}
	return s.Tone
}

func (s Style) audience() string {
	if s.Audience == "" {
		return "general consumers"
	}
	return s.Audience
}

func (s Style) background() string {
	if s.Background == "" {
		return "white"
	}
	return s.Background
}

func (s Style) lighting() string {
	if s.Lighting == "" {
		return "natural"
	}
	return s.Lighting
}

func (s Style) angle() string {
	if s.Angle == "" {
		return "front"
	}
	return s.Angle
}

// appendProductInfo adds only the non-empty product fields as prompt context.
func appendProductInfo(b *strings.Builder, p *models.Product) {
	if p.Name != "" {
		fmt.Fprintf(b, "\nProduct Name: %s", p.Name)
	}
	if p.Brand != "" {
		fmt.Fprintf(b, "\nBrand: %s", p.Brand)
	}
	if p.Price > 0 {
		fmt.Fprintf(b, "\nPrice: $%.2f", p.Price)
	}
	if p.Category != "" {
		fmt.Fprintf(b, "\nCategory: %s", p.Category)
	}
	if p.Subcategory != "" {
		fmt.Fprintf(b, "\nSubcategory: %s", p.Subcategory)
	}
	if p.BasicDescription != "" {
		fmt.Fprintf(b, "\nBasic Description: %s", p.BasicDescription)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(b, "\nFeatures: %s", strings.Join(p.Features, ", "))
	}
	if len(p.Materials) > 0 {
		fmt.Fprintf(b, "\nMaterials: %s", strings.Join(p.Materials, ", "))
	}
	if len(p.Colors) > 0 {
		fmt.Fprintf(b, "\nColors: %s", strings.Join(p.Colors, ", "))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(b, "\nTags: %s", strings.Join(p.Tags, ", "))
	}
}

// FullProfilePrompt asks for every generated text field in a fixed numbered
// order, one blank line between sections. The section order here is the
// contract ParseProfile depends on; change both together.
func FullProfilePrompt(p *models.Product) string {
	var b strings.Builder
	b.WriteString("Use the following product information to generate content:")
	appendProductInfo(&b, p)

	b.WriteString(`

Generate:
1. An SEO-optimized title (max 60 characters)
2. An SEO-optimized meta description (max 160 characters)
3. A set of five features that highlight the product's unique selling points. Separated by commas.
4. A set of five materials that could be used to manufacture this product. Separated by commas.
5. Retain the colors if they exist, otherwise suggest five color options for this product. Separated by commas.
6. A set of five tags that could be used to market this product. Separated by commas.
7. A single line product description (max 200 characters)
8. A detailed product description (250-400 words)
Give a line space between each section to enable easy parsing.
Make sure to: use all the existing data, and suggest new data where necessary.
Always use the same format. (**1.**, **2.**, **3.**, etc.)`)

	return b.String()
}

var fieldInstructions = map[string]string{
	"seo_title":            "Generate an SEO-optimized title for the product. The title should be concise, engaging, include relevant keywords, and stay within 60 characters.",
	"seo_description":      "Generate an SEO-optimized meta description for the product. The description should be engaging, include relevant keywords, and stay within 160 characters.",
	"detailed_description": "Generate a detailed product description. Highlight the product's unique features, benefits, and use cases. The tone should be professional and informative.",
	"description":          "Generate a concise and engaging product description. The description should highlight the product's key features and benefits.",
	"features":             "Suggest additional features that would make the product more appealing to customers. Provide a list of 5 features, where each feature is concise and written as a single line.",
	"materials":            "Suggest additional materials that could be used to manufacture this product. Provide a comma-separated list of materials.",
	"colors":               "Suggest additional color options for this product. Provide a comma-separated list of colors.",
	"tags":                 "Suggest additional tags or keywords that could help categorize and market this product effectively. Provide a comma-separated list of tags.",

	"marketing_copy.email":                  "Generate an engaging marketing email for this product. The email should highlight the product's key benefits and include a call-to-action to purchase or learn more.",
	"marketing_copy.social_media.instagram": "Generate an Instagram post caption for this product. The caption should be engaging, include relevant hashtags, and encourage users to interact with the post.",
	"marketing_copy.social_media.facebook":  "Generate a Facebook post for this product. The post should highlight the product's key benefits and include a call-to-action to purchase or learn more.",
}

// SupportedField reports whether a single-field generation target is known.
func SupportedField(field string) bool {
	_, ok := fieldInstructions[field]
	return ok
}

// SingleFieldPrompt builds a tailored instruction for one generation target.
func SingleFieldPrompt(p *models.Product, field string) (string, error) {
	instruction, ok := fieldInstructions[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	var b strings.Builder
	b.WriteString("Using the following product information:")
	appendProductInfo(&b, p)
	b.WriteString("\n\n")
	b.WriteString(instruction)
	return b.String(), nil
}

// SEOPrompt batches the two SEO fields into one call, two sections separated
// by a blank line.
func SEOPrompt(p *models.Product) string {
	var b strings.Builder
	b.WriteString("Using the following product information:")
	appendProductInfo(&b, p)
	b.WriteString(`

Generate:
1. An SEO-optimized title (max 60 characters)
2. An SEO-optimized meta description (max 160 characters)
Give a line space between the two sections to enable easy parsing.`)
	return b.String()
}

// MarketingEmailPrompt builds the dedicated marketing-email instruction used
// by the fill-missing path.
func MarketingEmailPrompt(p *models.Product) string {
	prompt, _ := SingleFieldPrompt(p, "marketing_copy.email")
	return prompt
}

// DescriptionPrompt builds the long structured brief for the detailed
// description: context, style instructions, and a fixed 5-part outline.
func DescriptionPrompt(p *models.Product, style Style) string {
	var b strings.Builder
	b.WriteString("Create a compelling product description for the following e-commerce product:\n\n")

	if p.Category != "" {
		fmt.Fprintf(&b, "CATEGORY: %s\n", p.Category)
	}
	if len(p.Features) > 0 {
		b.WriteString("\nKEY FEATURES:\n")
		for _, feature := range p.Features {
			fmt.Fprintf(&b, "• %s\n", feature)
		}
	}
	if len(p.Materials) > 0 {
		b.WriteString("\nMATERIALS:\n")
		for _, material := range p.Materials {
			fmt.Fprintf(&b, "• %s\n", material)
		}
	}
	if len(p.Colors) > 0 {
		fmt.Fprintf(&b, "\nAVAILABLE COLORS: %s\n", strings.Join(p.Colors, ", "))
	}
	if p.BasicDescription != "" {
		fmt.Fprintf(&b, "\nBASIC PRODUCT INFO: %s\n", p.BasicDescription)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "\nTARGET KEYWORDS: %s\n", strings.Join(p.Tags, ", "))
	}

	b.WriteString("\n--- WRITING INSTRUCTIONS ---\n")
	fmt.Fprintf(&b, "TONE: %s\n", style.tone())

	switch style.Length {
	case "short":
		b.WriteString("LENGTH: Concise, approximately 75-100 words\n")
	case "long":
		b.WriteString("LENGTH: Detailed, approximately 200-250 words\n")
	default: // medium
		b.WriteString("LENGTH: Balanced, approximately 150-175 words\n")
	}

	fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n", style.audience())

	b.WriteString(`
STRUCTURE:
1. Start with an attention-grabbing opening that highlights a key benefit
2. Describe what the product is and its primary use cases
3. Highlight 3-4 key features and their benefits to the user
4. Include relevant details about quality, materials, or design
5. End with a concise call-to-action or value proposition

ADDITIONAL GUIDELINES:
• Use active voice and present tense
• Focus on benefits, not just features
• Create vivid, sensory language where appropriate
• Avoid clichés and generic marketing language
`)

	if len(style.Keywords) > 0 {
		fmt.Fprintf(&b, "\nPlease naturally incorporate these keywords: %s\n", strings.Join(style.Keywords, ", "))
	}

	b.WriteString("\nProvide the product description as a cohesive, ready-to-use text without headings or bullet points unless they enhance readability. Don't include any disclaimers or explanations about the content.")
	return b.String()
}

// ImagePrompt builds the image-generation brief from product attributes and
// image style options.
func ImagePrompt(p *models.Product, style Style) string {
	var b strings.Builder
	b.WriteString("Generate a high-quality image of the following product:")
	appendProductInfo(&b, p)

	fmt.Fprintf(&b, "\n\nUse an aesthetic background: %s", style.background())
	fmt.Fprintf(&b, "\nEnsure %s lighting", style.lighting())
	fmt.Fprintf(&b, "\nShow the product from the %s angle", style.angle())
	return b.String()
}
