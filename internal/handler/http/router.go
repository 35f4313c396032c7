package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/halcyon-hr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	payrollHandler PayrollHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListActive)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Delete("/{id}", employeeHandler.Deactivate)

				r.Route("/{employeeId}/salary-components", func(r chi.Router) {
					r.Get("/", payrollHandler.GetEmployeeStructure)
					r.Post("/", payrollHandler.AssignComponent)
				})

				r.Get("/{employeeId}/attendance/summary", attendanceHandler.Summarize)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Mark)
				r.Post("/bulk", attendanceHandler.BulkMark)
			})

			r.Route("/salary-components", func(r chi.Router) {
				r.Get("/", payrollHandler.ListComponents)
				r.Post("/", payrollHandler.CreateComponent)
				r.Get("/{id}", payrollHandler.GetComponent)
				r.Put("/{id}", payrollHandler.UpdateComponent)
				r.Delete("/{id}", payrollHandler.DeleteComponent)
			})

			r.Delete("/salary-assignments/{id}", payrollHandler.RemoveAssignment)

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/run", payrollHandler.Run)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRecords)
					r.Get("/{id}", payrollHandler.GetRecord)
					r.Put("/{id}", payrollHandler.UpdateRecord)
					r.Delete("/{id}", payrollHandler.DeleteRecord)
					r.Post("/{id}/approve", payrollHandler.ApproveRecord)
					r.Post("/{id}/pay", payrollHandler.MarkRecordPaid)
					r.Post("/{id}/cancel", payrollHandler.CancelRecord)
				})
			})
		})
	})

	return r
}
