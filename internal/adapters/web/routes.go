package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the bot's JSON API.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	api.Post("/command", handlers.PostCommand)
	api.Get("/command", handlers.GetCommand)

	api.Post("/access", handlers.SubmitAccessCode)
	api.Delete("/access", handlers.ClearAccessCode)
	api.Get("/access/stats", handlers.AccessStats)
	api.Get("/access/codes", handlers.AccessCodes)
	api.Get("/access/info/:code", handlers.AccessInfo)

	api.Get("/insights", handlers.Insights)

	// Cron triggers answer both verbs so hosted schedulers can use either.
	api.Post("/cron/tweet-hourly", handlers.CronTweetHourly)
	api.Get("/cron/tweet-hourly", handlers.CronTweetHourly)
	api.Post("/cron/reply-mentions", handlers.CronReplyMentions)
	api.Get("/cron/reply-mentions", handlers.CronReplyMentions)
	api.Post("/cron/gm-tweet", handlers.CronGMTweet)
	api.Get("/cron/gm-tweet", handlers.CronGMTweet)

	api.Get("/scheduler", handlers.SchedulerStatus)
	api.Post("/scheduler", handlers.SchedulerControl)
}
