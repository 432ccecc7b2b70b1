package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MarketingCopy holds generated campaign text keyed by channel.
type MarketingCopy struct {
	Email       string            `bson:"email" json:"email"`
	SocialMedia map[string]string `bson:"socialMedia" json:"social_media"`
}

type Product struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID bson.ObjectID `bson:"userId" json:"user_id"`

	Name             string  `bson:"name" json:"name"`
	Price            float64 `bson:"price" json:"price"`
	Brand            string  `bson:"brand" json:"brand"`
	Category         string  `bson:"category" json:"category"`
	Subcategory      string  `bson:"subcategory" json:"subcategory"`
	BasicDescription string  `bson:"basicDescription" json:"basic_description"`

	Features  []string `bson:"features" json:"features"`
	Materials []string `bson:"materials" json:"materials"`
	Colors    []string `bson:"colors" json:"colors"`
	Tags      []string `bson:"tags" json:"tags"`

	SEOTitle            string        `bson:"seoTitle" json:"seo_title"`
	SEODescription      string        `bson:"seoDescription" json:"seo_description"`
	DetailedDescription string        `bson:"detailedDescription" json:"detailed_description"`
	ImageURL            string        `bson:"imageUrl" json:"image_url"`
	MarketingCopy       MarketingCopy `bson:"marketingCopy" json:"marketing_copy"`

	IsCompleted bool      `bson:"isCompleted" json:"is_completed"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updated_at"`
}

// HasAllGeneratedContent reports whether every generator-owned field,
// the hosted image included, is populated. Social posts are optional
// extras and stay out of the check.
func (p *Product) HasAllGeneratedContent() bool {
	return p.SEOTitle != "" &&
		p.SEODescription != "" &&
		p.DetailedDescription != "" &&
		p.ImageURL != "" &&
		len(p.Features) > 0 &&
		len(p.Materials) > 0 &&
		len(p.Colors) > 0 &&
		len(p.Tags) > 0 &&
		p.MarketingCopy.Email != ""
}
