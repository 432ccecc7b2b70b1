package dto

type CreateProductDTO struct {
	Name             string   `json:"name" binding:"required,min=2"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	Brand            string   `json:"brand"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	BasicDescription string   `json:"basic_description" binding:"required"`
	Features         []string `json:"features"`
	Materials        []string `json:"materials"`
	Colors           []string `json:"colors"`
	Tags             []string `json:"tags"`
}

// UpdateProductDTO — all fields are optional pointers
type UpdateProductDTO struct {
	Name             *string   `json:"name,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	Brand            *string   `json:"brand,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Subcategory      *string   `json:"subcategory,omitempty"`
	BasicDescription *string   `json:"basic_description,omitempty"`
	Features         *[]string `json:"features,omitempty"`
	Materials        *[]string `json:"materials,omitempty"`
	Colors           *[]string `json:"colors,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
}
