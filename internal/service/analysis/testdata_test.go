package analysis

import (
	"time"

	"sentimentdash/internal/domain/post"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// scenarioTable is three posts: USA positive, USA negative, France negative
func scenarioTable() *post.Table {
	return post.NewTable([]post.Post{
		{Date: day("2020-01-01"), Text: "good day", CleanText: "good day", LocationClean: "USA", SentimentLabel: "Positive"},
		{Date: day("2020-01-02"), Text: "bad day", CleanText: "bad day", LocationClean: "USA", SentimentLabel: "Negative"},
		{Date: day("2020-01-03"), Text: "awful", CleanText: "awful", LocationClean: "France", SentimentLabel: "Negative"},
	})
}

func wideTable() *post.Table {
	labels := []string{"Positive", "Neutral", "Negative"}
	locations := []string{"USA", "France", "India", "", "Brazil", "Japan", "Kenya", "Chile", "Peru", "Spain", "Italy", "Egypt", "Nepal"}

	var posts []post.Post
	start := day("2020-03-01")
	for i := 0; i < 120; i++ {
		posts = append(posts, post.Post{
			Date:           start.AddDate(0, 0, i%7),
			Text:           "post",
			LocationClean:  locations[(i*7)%len(locations)],
			SentimentLabel: labels[(i*5)%len(labels)],
		})
	}
	return post.NewTable(posts)
}
