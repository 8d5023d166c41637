// Package chart turns aggregate records into a plotly sunburst trace and the
// single page that hosts it.
package chart

import (
	"net/url"
	"strings"

	"sunburst-explorer/internal/model"
)

// HoverTemplate shows the segment label, its count and its percentage.
const HoverTemplate = "<b>%{label}</b><br>" +
	"Count: %{customdata[0]}<br>" +
	"Percentage: %{customdata[1]:.2f}%<br>"

// Default titles.
const (
	PageTitle  = "Dynamic Ticket Visualization"
	ChartTitle = "Hierarchical Visualization of Data with Percentages"
)

// Node is one ring segment. Inner nodes aggregate the records beneath them.
type Node struct {
	ID         string
	Label      string
	Parent     string
	Level      string
	Depth      int
	Count      int
	Percentage float64
}

// Sunburst is the plotly trace, one slice entry per node.
type Sunburst struct {
	Title         string      `json:"title"`
	Levels        []string    `json:"levels"`
	IDs           []string    `json:"ids"`
	Labels        []string    `json:"labels"`
	Parents       []string    `json:"parents"`
	Values        []int       `json:"values"`
	CustomData    [][]float64 `json:"customdata"`
	HoverTemplate string      `json:"hovertemplate"`
	BranchValues  string      `json:"branchvalues"`
}

// Nodes expands records into ring segments. Parents precede their children
// and siblings keep the order of records.
func Nodes(path model.HierarchyPath, records []model.AggregateRecord) []Node {
	index := make(map[string]int)
	var nodes []Node
	for _, rec := range records {
		parent := ""
		for depth := 0; depth < len(path) && depth < len(rec.Values); depth++ {
			id := nodeID(rec.Values[:depth+1])
			i, ok := index[id]
			if !ok {
				i = len(nodes)
				index[id] = i
				nodes = append(nodes, Node{
					ID:     id,
					Label:  rec.Values[depth],
					Parent: parent,
					Level:  path[depth],
					Depth:  depth,
				})
			}
			nodes[i].Count += rec.Count
			nodes[i].Percentage += rec.Percentage
			parent = id
		}
	}
	return nodes
}

// BuildSunburst builds the trace for path and records.
func BuildSunburst(path model.HierarchyPath, records []model.AggregateRecord) Sunburst {
	nodes := Nodes(path, records)
	s := Sunburst{
		Title:         ChartTitle,
		Levels:        append([]string{}, path...),
		IDs:           make([]string, 0, len(nodes)),
		Labels:        make([]string, 0, len(nodes)),
		Parents:       make([]string, 0, len(nodes)),
		Values:        make([]int, 0, len(nodes)),
		CustomData:    make([][]float64, 0, len(nodes)),
		HoverTemplate: HoverTemplate,
		BranchValues:  "total",
	}
	for _, n := range nodes {
		s.IDs = append(s.IDs, n.ID)
		s.Labels = append(s.Labels, n.Label)
		s.Parents = append(s.Parents, n.Parent)
		s.Values = append(s.Values, n.Count)
		s.CustomData = append(s.CustomData, []float64{float64(n.Count), n.Percentage})
	}
	return s
}

// nodeID escapes each value so a "/" inside a label cannot merge two
// branches. The leading slash keeps ids non-empty; "" is plotly's root.
func nodeID(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(v))
	}
	return b.String()
}
