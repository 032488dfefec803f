package render

import (
	"github.com/ZacxDev/crank/content"
	"github.com/gobuffalo/plush"
)

const redirectTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title><%= title %> has moved</title>
  <meta http-equiv="refresh" content="0; URL=<%= url %>">
  <link rel="canonical" href="<%= url %>">
</head>
<body>
  <p>
    <strong><%= title %></strong>
    has moved to <a href="<%= url %>"><%= url %></a>
  </p>
</body>
</html>
`

// Redirect renders a document that sends browsers on to url. The page's
// title names it, falling back to "This page".
func Redirect(url string, conf content.Values) (string, error) {
	title, _ := conf.String(KeyTitle)
	if title == "" {
		title = "This page"
	}

	tmpl, err := plush.Parse(redirectTemplate)
	if err != nil {
		return "", err
	}
	ctx := plush.NewContext()
	ctx.Set("url", url)
	ctx.Set("title", title)
	return tmpl.Exec(ctx)
}
