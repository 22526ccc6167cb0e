package content

import "gorm.io/datatypes"

type CreateContentDTO struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Type          string   `json:"type" validate:"required"`
	URL           string   `json:"url"`
	EmbedURL      string   `json:"embedUrl"`
	Unit          string   `json:"unit"`
	Sector        string   `json:"sector"`
	Positions     []string `json:"positions"`
	Required      bool     `json:"required"`
	Order         *int     `json:"order"`
	EstimatedTime string   `json:"estimatedTime"`
	Tags          []string `json:"tags"`
	Owner         string   `json:"owner"`
}

func (dto CreateContentDTO) toEntity() *Content {
	return &Content{
		Title:         dto.Title,
		Description:   dto.Description,
		Type:          dto.Type,
		URL:           dto.URL,
		EmbedURL:      dto.EmbedURL,
		Unit:          dto.Unit,
		Sector:        dto.Sector,
		Positions:     datatypes.NewJSONSlice(dto.Positions),
		Required:      dto.Required,
		Order:         dto.Order,
		EstimatedTime: dto.EstimatedTime,
		Tags:          datatypes.NewJSONSlice(dto.Tags),
		Owner:         dto.Owner,
	}
}

type UpdateContentDTO struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Type          *string   `json:"type"`
	URL           *string   `json:"url"`
	EmbedURL      *string   `json:"embedUrl"`
	Unit          *string   `json:"unit"`
	Sector        *string   `json:"sector"`
	Positions     *[]string `json:"positions"`
	Required      *bool     `json:"required"`
	Order         *int      `json:"order"`
	EstimatedTime *string   `json:"estimatedTime"`
	Tags          *[]string `json:"tags"`
	Owner         *string   `json:"owner"`
}

func (dto UpdateContentDTO) apply(c *Content) {
	if dto.Title != nil {
		c.Title = *dto.Title
	}
	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.Type != nil {
		c.Type = *dto.Type
	}
	if dto.URL != nil {
		c.URL = *dto.URL
	}
	if dto.EmbedURL != nil {
		c.EmbedURL = *dto.EmbedURL
	}
	if dto.Unit != nil {
		c.Unit = *dto.Unit
	}
	if dto.Sector != nil {
		c.Sector = *dto.Sector
	}
	if dto.Positions != nil {
		c.Positions = datatypes.NewJSONSlice(*dto.Positions)
	}
	if dto.Required != nil {
		c.Required = *dto.Required
	}
	if dto.Order != nil {
		c.Order = dto.Order
	}
	if dto.EstimatedTime != nil {
		c.EstimatedTime = *dto.EstimatedTime
	}
	if dto.Tags != nil {
		c.Tags = datatypes.NewJSONSlice(*dto.Tags)
	}
	if dto.Owner != nil {
		c.Owner = *dto.Owner
	}
}
