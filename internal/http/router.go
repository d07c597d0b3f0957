package api

import (
	"log"
	stdhttp "net/http"

	"todoapi/internal/auth"
	intconfig "todoapi/internal/config"
	"todoapi/internal/domain"
	h "todoapi/internal/http/handlers"
	"todoapi/internal/http/middleware"
	"todoapi/internal/http/respond"
	"todoapi/internal/pagination"
	"todoapi/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users  services.UserStore
	Todos  services.TodoStore
	Tokens *auth.TokenService
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	handler := h.Handler{
		Auth:    services.AuthService{Users: deps.Users, Tokens: deps.Tokens, Timeout: env.QueryTimeout},
		Users:   services.UserService{Users: deps.Users, Timeout: env.QueryTimeout},
		Todos:   services.TodoService{Todos: deps.Todos, Timeout: env.QueryTimeout},
		Reports: services.ReportService{Todos: deps.Todos, Timeout: env.QueryTimeout},
		Paging:  pagination.Options{DefaultLimit: env.PageLimitDefault, MaxLimit: env.PageLimitMax},
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins, env.AuthHeader))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Send(c, stdhttp.StatusNotFound, nil, "Route not found")
	})

	authenticated := middleware.Authenticate(deps.Tokens, env.AuthHeader)
	adminOnly := middleware.Authenticate(deps.Tokens, env.AuthHeader, middleware.RequireRole(domain.RoleAdmin))

	r.GET("/health", h.Health)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", handler.Register)
	authGroup.POST("/login", handler.Login)

	todos := r.Group("/todos", authenticated)
	todos.GET("", handler.GetTodos)
	todos.POST("", handler.CreateTodo)
	todos.GET("/:id", handler.GetTodo)
	todos.PUT("/:id", handler.UpdateTodo)
	todos.DELETE("/:id", handler.DeleteTodo)

	users := r.Group("/users", adminOnly)
	users.GET("", handler.GetUsers)
	users.POST("", handler.CreateUser)
	users.GET("/:id", handler.GetUserByID)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	reports := r.Group("/reports", adminOnly)
	reports.GET("/todos", handler.TodoReportPDF)

	return r
}
