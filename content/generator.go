package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/selorm/prodscribe/models"
	"github.com/selorm/prodscribe/utils"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

const (
	writerRole    = "You are a professional product content writer and SEO expert."
	developerRole = "You are a product development expert."

	defaultTemperature = 0.7
	profileMaxTokens   = 2000
	fieldMaxTokens     = 1000
)

// TextGenerator is the external generation surface the orchestrator drives.
type TextGenerator interface {
	Complete(ctx context.Context, prompt, systemRole string, temperature float64, maxTokens int) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ProductStore is the subset of product persistence the orchestrator needs.
type ProductStore interface {
	FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*models.Product, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) error
}

// ImageStore re-hosts generated images under a durable URL.
type ImageStore interface {
	SaveFromURL(ctx context.Context, srcURL, prefix string) (string, error)
}

// Generator coordinates prompt building, external calls, response parsing
// and the single patch write per request.
type Generator struct {
	client   TextGenerator
	products ProductStore
	images   ImageStore
	log      logrus.FieldLogger
}

func NewGenerator(client TextGenerator, products ProductStore, images ImageStore, log logrus.FieldLogger) *Generator {
	return &Generator{
		client:   client,
		products: products,
		images:   images,
		log:      log,
	}
}

// GenerateAll runs the full-profile, detailed-description and image calls
// concurrently, gathers every result, and writes one merged patch. A failure
// of any call aborts the request before anything is persisted.
func (g *Generator) GenerateAll(ctx context.Context, id, ownerID bson.ObjectID, style Style) (bson.M, error) {
	product, err := g.products.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	var (
		profileRaw  string
		detailedRaw string
		externalURL string
	)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		raw, err := g.client.Complete(grpCtx, FullProfilePrompt(product), writerRole, defaultTemperature, profileMaxTokens)
		profileRaw = raw
		return err
	})
	grp.Go(func() error {
		raw, err := g.client.Complete(grpCtx, DescriptionPrompt(product, style), writerRole, defaultTemperature, fieldMaxTokens)
		detailedRaw = raw
		return err
	})
	grp.Go(func() error {
		url, err := g.client.GenerateImage(grpCtx, ImagePrompt(product, style))
		externalURL = url
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	// The generator's URL may expire; re-host immediately.
	imageURL, err := g.images.SaveFromURL(ctx, externalURL, utils.GenerateSlug(product.Name))
	if err != nil {
		return nil, fmt.Errorf("store generated image: %w", err)
	}

	profile := ParseProfile(profileRaw)
	patch := bson.M{
		"seoTitle":            profile.SEOTitle,
		"seoDescription":      profile.SEODescription,
		"features":            profile.Features,
		"materials":           profile.Materials,
		"colors":              profile.Colors,
		"tags":                profile.Tags,
		"basicDescription":    profile.BasicDescription,
		"detailedDescription": strings.TrimSpace(detailedRaw),
		"imageUrl":            imageURL,
	}
	patch["isCompleted"] = applyPatch(*product, patch).HasAllGeneratedContent()

	if err := g.products.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"product": id.Hex(),
		"fields":  len(patch),
	}).Info("generated full product profile")

	return patch, nil
}

// fieldPatchKeys maps generation targets to their stored paths. Membership
// here must stay aligned with the prompt table in prompts.go.
var fieldPatchKeys = map[string]string{
	"seo_title":                             "seoTitle",
	"seo_description":                       "seoDescription",
	"detailed_description":                  "detailedDescription",
	"description":                           "basicDescription",
	"features":                              "features",
	"materials":                             "materials",
	"colors":                                "colors",
	"tags":                                  "tags",
	"marketing_copy.email":                  "marketingCopy.email",
	"marketing_copy.social_media.instagram": "marketingCopy.socialMedia.instagram",
	"marketing_copy.social_media.facebook":  "marketingCopy.socialMedia.facebook",
}

// GenerateField regenerates one named field. Unknown field names fail before
// any external call is made.
func (g *Generator) GenerateField(ctx context.Context, id, ownerID bson.ObjectID, field string) (bson.M, error) {
	if !SupportedField(field) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	product, err := g.products.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	prompt, err := SingleFieldPrompt(product, field)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.Complete(ctx, prompt, writerRole, defaultTemperature, fieldMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", field, err)
	}

	patch := bson.M{fieldPatchKeys[field]: fieldValue(field, raw)}
	patch["isCompleted"] = applyPatch(*product, patch).HasAllGeneratedContent()

	if err := g.products.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}
	return patch, nil
}

// fieldValue structures raw completion text for one field. The features
// prompt asks for one item per line; the other list fields are
// comma-separated.
func fieldValue(field, raw string) any {
	switch field {
	case "features":
		return ParseLines(raw)
	case "materials", "colors", "tags":
		return ParseList(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

// requiredFields is checked in order by CompleteMissing.
var requiredFields = []string{
	"seo_title",
	"seo_description",
	"detailed_description",
	"features",
	"materials",
	"colors",
	"tags",
	"marketing_copy.email",
}

func missingFields(p *models.Product) []string {
	missing := make([]string, 0)
	for _, field := range requiredFields {
		empty := false
		switch field {
		case "seo_title":
			empty = p.SEOTitle == ""
		case "seo_description":
			empty = p.SEODescription == ""
		case "detailed_description":
			empty = p.DetailedDescription == ""
		case "features":
			empty = len(p.Features) == 0
		case "materials":
			empty = len(p.Materials) == 0
		case "colors":
			empty = len(p.Colors) == 0
		case "tags":
			empty = len(p.Tags) == 0
		case "marketing_copy.email":
			empty = p.MarketingCopy.Email == ""
		}
		if empty {
			missing = append(missing, field)
		}
	}
	return missing
}

// CompleteMissing generates only the required fields that are currently
// empty. An empty patch with a nil error means nothing was missing; no
// external call is made in that case.
func (g *Generator) CompleteMissing(ctx context.Context, id, ownerID bson.ObjectID) (bson.M, error) {
	product, err := g.products.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	missing := missingFields(product)
	if len(missing) == 0 {
		return bson.M{}, nil
	}

	missingSet := make(map[string]bool, len(missing))
	for _, field := range missing {
		missingSet[field] = true
	}

	patch := bson.M{}

	// Both SEO fields come from one batched call.
	if missingSet["seo_title"] || missingSet["seo_description"] {
		raw, err := g.client.Complete(ctx, SEOPrompt(product), writerRole, defaultTemperature, fieldMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("generate seo fields: %w", err)
		}
		sections := SplitSections(raw)
		if missingSet["seo_title"] && len(sections) > 0 {
			patch["seoTitle"] = StripMarkdown(sections[0])
		}
		if missingSet["seo_description"] && len(sections) > 1 {
			patch["seoDescription"] = StripMarkdown(sections[1])
		}
	}

	if missingSet["detailed_description"] {
		raw, err := g.client.Complete(ctx, DescriptionPrompt(product, Style{}), writerRole, defaultTemperature, fieldMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("generate detailed description: %w", err)
		}
		patch["detailedDescription"] = strings.TrimSpace(raw)
	}

	if missingSet["marketing_copy.email"] {
		raw, err := g.client.Complete(ctx, MarketingEmailPrompt(product), writerRole, defaultTemperature, fieldMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("generate marketing email: %w", err)
		}
		patch["marketingCopy.email"] = strings.TrimSpace(raw)
	}

	for _, field := range []string{"features", "materials", "colors", "tags"} {
		if !missingSet[field] {
			continue
		}
		prompt, err := SingleFieldPrompt(product, field)
		if err != nil {
			return nil, err
		}
		raw, err := g.client.Complete(ctx, prompt, developerRole, defaultTemperature, fieldMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", field, err)
		}
		patch[fieldPatchKeys[field]] = fieldValue(field, raw)
	}

	patch["isCompleted"] = applyPatch(*product, patch).HasAllGeneratedContent()

	if err := g.products.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"product": id.Hex(),
		"missing": missing,
	}).Info("completed missing product fields")

	return patch, nil
}

// applyPatch overlays a patch onto a product copy so derived state can be
// computed before the write.
func applyPatch(p models.Product, patch bson.M) *models.Product {
	for key, value := range patch {
		switch key {
		case "seoTitle":
			p.SEOTitle, _ = value.(string)
		case "seoDescription":
			p.SEODescription, _ = value.(string)
		case "detailedDescription":
			p.DetailedDescription, _ = value.(string)
		case "basicDescription":
			p.BasicDescription, _ = value.(string)
		case "imageUrl":
			p.ImageURL, _ = value.(string)
		case "features":
			p.Features, _ = value.([]string)
		case "materials":
			p.Materials, _ = value.([]string)
		case "colors":
			p.Colors, _ = value.([]string)
		case "tags":
			p.Tags, _ = value.([]string)
		case "marketingCopy.email":
			p.MarketingCopy.Email, _ = value.(string)
		case "marketingCopy.socialMedia.instagram", "marketingCopy.socialMedia.facebook":
			if p.MarketingCopy.SocialMedia == nil {
				p.MarketingCopy.SocialMedia = map[string]string{}
			}
			platform := key[strings.LastIndex(key, ".")+1:]
			p.MarketingCopy.SocialMedia[platform], _ = value.(string)
		}
	}
	return &p
}
