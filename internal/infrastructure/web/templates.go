package web

import "html/template"

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Top 10 Stocks to Invest In This Year</title>
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/github-markdown-css/5.1.0/github-markdown.min.css">
    <style>
        .markdown-body {
            box-sizing: border-box;
            min-width: 200px;
            max-width: 980px;
            margin: 0 auto;
            padding: 45px;
        }
        .refresh-btn {
            background-color: #4CAF50;
            border: none;
            color: white;
            padding: 15px 32px;
            text-align: center;
            text-decoration: none;
            display: inline-block;
            font-size: 16px;
            margin: 20px 0;
            cursor: pointer;
            border-radius: 4px;
        }
        .refresh-btn:hover {
            background-color: #45a049;
        }
        .timestamp {
            color: #666;
            font-style: italic;
            margin-top: 20px;
        }
    </style>
</head>
<body>
    <article class="markdown-body">
        <h1>Top 10 Stocks to Invest In This Year</h1>
        <form method="post">
            <button type="submit" name="refresh" value="1" class="refresh-btn">Refresh Recommendations</button>
        </form>
        {{.Content}}
        <div class="timestamp">Last updated: {{.LastUpdated}}</div>
        <footer style="margin-top: 2rem; color: #586069; font-size: 0.9rem;">
            <p>Note: Stock recommendations are based on current market analysis and may change.</p>
        </footer>
    </article>
</body>
</html>`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Error</title>
    <style>
        .error { color: red; }
    </style>
</head>
<body>
    <h1>Error Generating Recommendations</h1>
    <p class="error">{{.Error}}</p>
    <a href="/">Back to recommendations</a>
</body>
</html>`

var (
	pageTmpl  = template.Must(template.New("page").Parse(pageTemplate))
	errorTmpl = template.Must(template.New("error").Parse(errorTemplate))
)

type pageData struct {
	Content     template.HTML
	LastUpdated string
}

type errorData struct {
	Error string
}
