package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.requireOwner)
	// websocket upgrades are ticket-authenticated and must not get the JSON
	// content type
	wsMiddleware := alice.New(app.recoverPanic, app.logRequest)

	mux := pat.New()

	// Wizard session
	mux.Post("/wizard", authMiddleware.ThenFunc(app.wizardHandler.OpenSession))
	mux.Post("/wizard/:sid/items", authMiddleware.ThenFunc(app.wizardHandler.CreateItem))
	mux.Post("/wizard/:sid/advance", authMiddleware.ThenFunc(app.wizardHandler.Advance))
	mux.Post("/wizard/:sid/back", authMiddleware.ThenFunc(app.wizardHandler.Back))
	mux.Post("/wizard/:sid/reset", authMiddleware.ThenFunc(app.wizardHandler.Reset))

	// Pricing step
	mux.Get("/wizard/:sid/price", authMiddleware.ThenFunc(app.wizardHandler.GetAssessment))
	mux.Post("/wizard/:sid/price/accept", authMiddleware.ThenFunc(app.wizardHandler.AcceptPrice))
	mux.Post("/wizard/:sid/price/rerun", authMiddleware.ThenFunc(app.wizardHandler.RerunAssessment))

	// Optimisation step
	mux.Get("/wizard/:sid/optimization", authMiddleware.ThenFunc(app.wizardHandler.GetOptimization))
	mux.Post("/wizard/:sid/optimization/save", authMiddleware.ThenFunc(app.wizardHandler.SaveOptimization))
	mux.Post("/wizard/:sid/optimization/rerun", authMiddleware.ThenFunc(app.wizardHandler.RerunOptimization))

	// Photos step
	mux.Post("/wizard/:sid/photos/handoff", authMiddleware.ThenFunc(app.wizardHandler.PhotoHandoff))
	mux.Post("/wizard/:sid/photos/poll/start", authMiddleware.ThenFunc(app.wizardHandler.StartPhotoPoll))
	mux.Post("/wizard/:sid/photos/poll/stop", authMiddleware.ThenFunc(app.wizardHandler.StopPhotoPoll))
	mux.Post("/wizard/:sid/photos/skip", authMiddleware.ThenFunc(app.wizardHandler.SkipPhotos))

	// Packaging step
	mux.Get("/wizard/:sid/package", authMiddleware.ThenFunc(app.wizardHandler.GetPackage))
	mux.Post("/wizard/:sid/package/listing-ref", authMiddleware.ThenFunc(app.wizardHandler.RecordListingRef))

	// Event stream
	mux.Post("/wizard/:sid/events/ticket", authMiddleware.ThenFunc(app.wizardHandler.IssueEventTicket))
	mux.Get("/wizard/:sid/events", wsMiddleware.ThenFunc(app.serveEvents))

	mux.Get("/wizard/:sid", authMiddleware.ThenFunc(app.wizardHandler.GetSession))

	// Intake helpers and records
	mux.Post("/import", authMiddleware.ThenFunc(app.wizardHandler.ImportListing))
	mux.Get("/items/:id", authMiddleware.ThenFunc(app.itemHandler.GetItemByID))
	mux.Post("/items/:id/photo-edited", authMiddleware.ThenFunc(app.itemHandler.MarkPhotoEdited))

	return mux
}
