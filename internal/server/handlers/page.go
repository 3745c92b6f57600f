// internal/server/handlers/page.go

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type pagePanel struct {
	ID      string
	Title   string
	Warning string
	Chart   template.JS
}

type pageSample struct {
	Date           string
	UserLocation   string
	SentimentLabel string
	Text           string
}

type pageData struct {
	Title         string
	Error         string
	Detail        string
	RenderID      string
	RowCount      int
	Sentiments    []string
	Locations     []string
	Sentiment     string
	Location      string
	StartDate     string
	EndDate       string
	MinDate       string
	MaxDate       string
	Panels        []pagePanel
	Sample        []pageSample
	SampleWarning string
}

func newPageData(views dashboard.Views) pageData {
	data := pageData{
		Title:         views.Title,
		RenderID:      views.RenderID,
		RowCount:      views.RowCount,
		Sentiments:    append([]string{post.AllValue}, views.Options.Sentiments...),
		Locations:     append([]string{post.AllValue}, views.Options.Locations...),
		Sentiment:     orAll(views.Criteria.Sentiment),
		Location:      orAll(views.Criteria.Location),
		SampleWarning: views.SampleWarning,
	}

	if views.Options.HasDates {
		data.MinDate = views.Options.MinDate.Format(DateLayout)
		data.MaxDate = views.Options.MaxDate.Format(DateLayout)
		data.StartDate, data.EndDate = data.MinDate, data.MaxDate
	}
	if start, end, ok := views.Criteria.DateRange(); ok {
		data.StartDate = start.Format(DateLayout)
		data.EndDate = end.Format(DateLayout)
	}

	for _, p := range views.Panels {
		data.Panels = append(data.Panels, pagePanel{
			ID:      string(p.ID),
			Title:   p.Title,
			Warning: p.Warning,
			Chart:   template.JS(p.Chart),
		})
	}

	for _, row := range views.Sample {
		data.Sample = append(data.Sample, pageSample{
			Date:           row.Date.Format(DateLayout),
			UserLocation:   row.UserLocation,
			SentimentLabel: row.SentimentLabel,
			Text:           row.Text,
		})
	}

	return data
}

func orAll(value string) string {
	if value == "" {
		return post.AllValue
	}
	return value
}

// renderPage executes the page into a buffer so a template error never
// leaves a half-written response
func renderPage(w http.ResponseWriter, log logger.Logger, code int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error("Failed to render page", logger.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
