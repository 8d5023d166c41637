package chart

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
<style>
:root { --bg: #fff; --fg: #262730; --side: #f0f2f6; --border: #d6d6d9; --info: #1c83e1; --warn: #d9a300; --muted: #6c757d; }
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: var(--fg); background: var(--bg); display: flex; min-height: 100vh; }
aside { width: 320px; background: var(--side); padding: 1.5rem 1rem; border-right: 1px solid var(--border); }
aside h2 { font-size: 1.1rem; margin: 1.25rem 0 .5rem; }
aside label { display: block; font-size: .85rem; margin: .75rem 0 .25rem; }
aside select, aside input[type=file] { width: 100%; padding: .35rem; border: 1px solid var(--border); border-radius: 4px; background: #fff; }
aside button { margin-top: .5rem; padding: .35rem .75rem; border: 1px solid var(--border); border-radius: 4px; background: #fff; cursor: pointer; }
main { flex: 1; padding: 2rem 3rem; }
main h1 { margin-top: 0; }
.msg { padding: .75rem 1rem; border-radius: 6px; margin: .75rem 0; }
.msg-info { background: #e8f2fc; border-left: 4px solid var(--info); }
.msg-warning { background: #fff8e1; border-left: 4px solid var(--warn); }
table { border-collapse: collapse; font-size: .85rem; margin-top: 1.5rem; }
th, td { padding: .35rem .75rem; border-bottom: 1px solid var(--border); text-align: left; }
td.num { text-align: right; }
.muted { color: var(--muted); font-size: .8rem; }
</style>
</head>
<body>
<aside>
  <form method="get" action="/" id="selection">
    <label><input type="checkbox" name="local" value="1" {{if .UseLocal}}checked{{end}} onchange="this.form.submit()"> Use Local Data</label>
    <input type="hidden" name="local_set" value="1">
    {{if not .UseLocal}}
      {{if .Datasets}}
      <label for="dataset">Dataset</label>
      <select name="dataset" id="dataset" onchange="this.form.submit()">
        <option value="">(choose an upload)</option>
        {{range .Datasets}}<option value="{{.ID}}" {{if eq .ID $.DatasetID}}selected{{end}}>{{.Name}} ({{.RowCount}} rows)</option>{{end}}
      </select>
      {{end}}
    {{end}}
    {{if .Columns}}
    <h2>Column Selection</h2>
    {{range .Pickers}}
    <label for="{{.Name}}">{{.Label}}</label>
    <select name="{{.Name}}" id="{{.Name}}" onchange="this.form.submit()">
      <option value="{{none}}" {{if eq .Selected none}}selected{{end}}>{{none}}</option>
      {{$sel := .Selected}}{{range $.Columns}}<option value="{{.}}" {{if eq . $sel}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    {{end}}
    {{if .FilterEnabled}}
    <h2>Optional Filters</h2>
    <label for="filter">Filter by Theme (Optional):</label>
    <select name="filter" id="filter" onchange="this.form.submit()">
      <option value="{{all}}" {{if eq .Filter all}}selected{{end}}>{{all}}</option>
      {{range .FilterOptions}}<option value="{{.}}" {{if eq . $.Filter}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    {{end}}
    {{end}}
  </form>
  {{if not .UseLocal}}
  <form method="post" action="/upload" enctype="multipart/form-data">
    <label for="file">Upload your CSV file</label>
    <input type="file" name="file" id="file" accept=".csv,.xlsx">
    <button type="submit">Upload</button>
  </form>
  {{end}}
</aside>
<main>
  <h1>{{.Title}}</h1>
  <p>This app visualizes hierarchical data with counts and percentages.</p>
  {{range .Messages}}<div class="msg msg-{{.Level}}">{{.Text}}</div>{{end}}
  {{if .DatasetName}}<p class="muted">Dataset: {{.DatasetName}}{{if .UseLocal}} ({{.LocalPath}}){{end}}</p>{{end}}
  {{if .Chart}}
  <div id="chart" style="width:100%;max-width:900px;height:720px;"></div>
  <script>
    const chart = {{.Chart}};
    Plotly.newPlot("chart", [{
      type: "sunburst",
      ids: chart.ids,
      labels: chart.labels,
      parents: chart.parents,
      values: chart.values,
      customdata: chart.customdata,
      branchvalues: chart.branchvalues,
      hovertemplate: chart.hovertemplate + "<extra></extra>"
    }], {title: {text: chart.title}, margin: {t: 60, l: 0, r: 0, b: 0}}, {responsive: true});
  </script>
  <table>
    <thead><tr>{{range .Path}}<th>{{.}}</th>{{end}}<th>count</th><th>percentage</th></tr></thead>
    <tbody>
    {{range .Records}}<tr>{{range .Values}}<td>{{.}}</td>{{end}}<td class="num">{{.Count}}</td><td class="num">{{percent .Percentage}}</td></tr>{{end}}
    </tbody>
  </table>
  {{end}}
</main>
</body>
</html>
`
