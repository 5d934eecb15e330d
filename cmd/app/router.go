package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	app.handle(router, http.MethodGet, "/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	// user service
	app.handle(router, http.MethodPost, "/v1/users/register", app.registerUserHandler)
	app.handle(router, http.MethodPost, "/v1/users/login", app.loginUserHandler)
	app.handle(router, http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// blog service
	app.handle(router, http.MethodGet, "/user_blogs/", app.requireAuthUser(app.userBlogsHandler))
	app.handle(router, http.MethodPost, "/create_blog/", app.requireAuthUser(app.createBlogHandler))
	app.handle(router, http.MethodPost, "/delete_blog/", app.requireAuthUser(app.deleteBlogHandler))
	app.handle(router, http.MethodGet, "/see_blog/:id", app.requireAuthUser(app.seeBlogHandler))
	app.handle(router, http.MethodPost, "/edit_blog/:id", app.requireAuthUser(app.editBlogHandler))
	app.handle(router, http.MethodGet, "/recent_activity/", app.requireAuthUser(app.recentActivityHandler))
	app.handle(router, http.MethodPost, "/add_comment/:id", app.requireAuthUser(app.addCommentHandler))
	app.handle(router, http.MethodPost, "/add_response/:id", app.requireAuthUser(app.addResponseHandler))

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(app.authenticate(router)))))
}

// handle registers h on the router, instrumented under its route pattern.
func (app *application) handle(router *httprouter.Router, method, path string, h http.HandlerFunc) {
	router.Handler(method, path, app.metrics(path, h))
}
