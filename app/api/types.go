package api

import (
	"github.com/freetic/freetic/app/ai"
	"github.com/freetic/freetic/app/catalog"
	"github.com/freetic/freetic/app/database"
	"github.com/freetic/freetic/app/tasks"
)

type Handler struct {
	bookRepo    database.BookRepository
	historyRepo database.HistoryRepository
	shelfRepo   database.ShelfRepository
	adRepo      database.AdConfigRepository
	quoteRepo   database.QuoteRepository
	ranker      *catalog.Ranker
	recommender *ai.Recommender
	quoteGen    *ai.QuoteGenerator
	scheduler   tasks.TaskSchedulerInterface
}
