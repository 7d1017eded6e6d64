package contexthelpers

type contextKey string

const IsAuthenticatedContextKey = contextKey("isAuthenticated")
const AuthenticatedUserIDContextKey = contextKey("authenticatedUserID")
const PlanContextKey = contextKey("plan")
const CurrentPathContextKey = contextKey("currentPath")
const LanguageContextKey = contextKey("language")
