package chart

import (
	"fmt"
	"html/template"
	"io"

	"sunburst-explorer/internal/model"
	"sunburst-explorer/pkg/utils"
)

// LevelLabels are the sidebar captions of the three column pickers.
var LevelLabels = [model.MaxLevels]string{
	"Select the first column (Theme):",
	"Select the second column (Sub-Theme):",
	"Select the column for Channels or Additional Breakdown:",
}

// Picker is one column select box in the sidebar.
type Picker struct {
	Name     string
	Label    string
	Selected string
}

// PageData feeds the page template.
type PageData struct {
	Title         string
	UseLocal      bool
	LocalPath     string
	DatasetID     string
	DatasetName   string
	Datasets      []model.DatasetInfo
	Columns       []string
	Pickers       []Picker
	FilterEnabled bool
	FilterOptions []string
	Filter        string
	Messages      []model.Message
	Path          model.HierarchyPath
	Records       []model.AggregateRecord
	Chart         *Sunburst
}

// NewPageData fills the defaults: page title and three empty pickers.
func NewPageData() PageData {
	data := PageData{Title: PageTitle, Filter: model.AllOption}
	for i, label := range LevelLabels {
		data.Pickers = append(data.Pickers, Picker{
			Name:     fmt.Sprintf("level%d", i+1),
			Label:    label,
			Selected: model.NoneOption,
		})
	}
	return data
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"percent": utils.FormatPercent,
	"none":    func() string { return model.NoneOption },
	"all":     func() string { return model.AllOption },
}).Parse(pageHTML))

// RenderPage writes the full HTML page.
func RenderPage(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = PageTitle
	}
	return pageTemplate.Execute(w, data)
}
