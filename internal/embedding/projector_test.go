package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/stylist/internal/model"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		item model.CatalogItem
		want string
	}{
		{
			name: "all fields",
			item: model.CatalogItem{
				Title:       "Linen Shirt",
				Description: "<p>Breathable <strong>linen</strong>\n\n for  summer &amp; travel.</p>",
				Tags:        []string{"summer", "casual"},
				Category:    "Shirts",
				Vendor:      "Coastline",
				Options: []model.ProductOption{
					{Name: "Size", Values: []string{"S", "M", "L"}},
					{Name: "Color", Values: []string{"White", "Sand"}},
				},
			},
			want: "Linen Shirt Breathable linen for summer & travel. summer casual Shirts Coastline Size: S, M, L Color: White, Sand",
		},
		{
			name: "empty fields contribute nothing",
			item: model.CatalogItem{
				Title:  "Wool Coat",
				Vendor: "Northwind",
			},
			want: "Wool Coat Northwind",
		},
		{
			name: "options without values are skipped",
			item: model.CatalogItem{
				Title:   "Scarf",
				Options: []model.ProductOption{{Name: "Title", Values: []string{" "}}, {Name: "", Values: []string{"x"}}},
			},
			want: "Scarf",
		},
		{
			name: "empty item",
			item: model.CatalogItem{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.item))
		})
	}
}

func TestProject_Deterministic(t *testing.T) {
	item := model.CatalogItem{Title: "Tee", Tags: []string{"b", "a"}, Description: "<br/>soft"}
	assert.Equal(t, Project(item), Project(item))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Hello world", CleanDescription("<div>Hello</div><div>world</div>"))
	assert.Equal(t, "Tom & Jerry's", CleanDescription("Tom &amp; Jerry&#39;s"))
	assert.Equal(t, "", CleanDescription("   <br>  "))
}
