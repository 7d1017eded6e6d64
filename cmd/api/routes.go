package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(base(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(base(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
		mustSessionSlow = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
					commonContext(app.slowTimeout(app.mustAuthenticate(next))))))))))
		}
	)

	mux.Handle("GET /api/healthy", noAuth(http.HandlerFunc(app.healthy)))

	mux.Handle("POST /api/users", session(http.HandlerFunc(app.registerPOST)))
	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("GET /api/exercises", session(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{exerciseID}/info", session(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("POST /api/users/{userID}/workouts", mustSession(http.HandlerFunc(app.workoutsPOST)))
	mux.Handle("GET /api/users/{userID}/workouts", mustSession(http.HandlerFunc(app.workoutsGET)))
	mux.Handle("GET /api/users/{userID}/constraints", mustSession(http.HandlerFunc(app.constraintsGET)))
	mux.Handle("POST /api/users/{userID}/constraints", mustSession(http.HandlerFunc(app.constraintsPOST)))
	mux.Handle("GET /api/users/{userID}/export", mustSession(http.HandlerFunc(app.exportUserDataGET)))

	mux.Handle("GET /api/users/{userID}/analytics/plateaus", mustSession(http.HandlerFunc(app.plateausGET)))
	mux.Handle("GET /api/users/{userID}/analytics/volume", mustSession(http.HandlerFunc(app.volumeGET)))
	mux.Handle("POST /api/users/{userID}/analytics/injury-risk", mustSession(http.HandlerFunc(app.injuryRiskPOST)))
	mux.Handle("POST /api/analytics/one-rep-max", mustSession(http.HandlerFunc(app.oneRepMaxPOST)))
	mux.Handle("POST /api/analytics/training-stress", mustSession(http.HandlerFunc(app.trainingStressPOST)))

	mux.Handle("POST /api/recommendations/substitutions", mustSession(http.HandlerFunc(app.substitutionsPOST)))
	mux.Handle("POST /api/recommendations/workout", mustSession(http.HandlerFunc(app.workoutRecommendationPOST)))
	mux.Handle("POST /api/recommendations/deload", mustSession(http.HandlerFunc(app.deloadPOST)))
	mux.Handle("POST /api/users/{userID}/recommendations/schedule", mustSession(http.HandlerFunc(app.schedulePOST)))

	mux.Handle("POST /api/users/{userID}/routines", mustSessionSlow(http.HandlerFunc(app.routineGeneratePOST)))

	mux.Handle("/", noAuth(http.HandlerFunc(app.notFound)))

	return mux
}
