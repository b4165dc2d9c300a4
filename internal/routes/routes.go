package routes

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	AllowedOrigins []string
	Tokens         middleware.TokenValidator
	Identities     middleware.IdentityLoader
	// UploadDir is served under /uploads when set (local storage driver).
	UploadDir string
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()

	// --- Global Middleware ---
	// CORS must answer preflights before anything else runs.
	router.Use(
		middleware.CORS(opts.AllowedOrigins),
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.AccessLog(),
		gin.Recovery(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	v1 := router.Group("/v1")
	v1.Use(middleware.Authenticate(opts.Tokens, opts.Identities))
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)

		// --- Catalog Routes (reads public, writes staff) ---
		catalog := v1.Group("/")
		catalog.Use(middleware.StaffOrReadOnly())
		{
			registerResource(catalog, "/categories", resource{
				list: h.ListCategories, get: h.GetCategory, create: h.CreateCategory,
				update: h.UpdateCategory, remove: h.DeleteCategory,
			})
			registerResource(catalog, "/subcategories", resource{
				list: h.ListSubCategories, get: h.GetSubCategory, create: h.CreateSubCategory,
				update: h.UpdateSubCategory, remove: h.DeleteSubCategory,
			})
			registerResource(catalog, "/collections", resource{
				list: h.ListCollections, get: h.GetCollection, create: h.CreateCollection,
				update: h.UpdateCollection, remove: h.DeleteCollection,
			})
			registerResource(catalog, "/products", resource{
				list: h.ListProducts, get: h.GetProduct, create: h.CreateProduct,
				update: h.UpdateProduct, remove: h.DeleteProduct,
			})
			registerResource(catalog, "/reviews", resource{
				list: h.ListReviews, get: h.GetReview, create: h.CreateReview,
				update: h.UpdateReview, remove: h.DeleteReview,
			})
		}

		// --- Order Routes (create public, the rest owner or staff) ---
		registerResource(v1, "/orders", resource{
			list: h.ListOrders, get: h.GetOrder, create: h.CreateOrder,
			update: h.UpdateOrder, remove: h.DeleteOrder,
		})
		v1.POST("/orders/:id/mark_paid", h.MarkOrderPaid())
		v1.POST("/orders/:id/mark_shipped", h.MarkOrderShipped())
		v1.POST("/orders/:id/mark_delivered", h.MarkOrderDelivered())
		v1.POST("/orders/:id/mark_cancelled", h.MarkOrderCancelled())

		// --- Upload Route (Staff Only) ---
		v1.POST("/uploads", middleware.RequireStaff(), h.UploadFile)

		// --- Payment Routes (Public) ---
		payments := v1.Group("/payments")
		{
			payments.POST("/create_stripe_session", h.CreateStripeSession)
			payments.POST("/create_paypal_order", h.CreatePayPalOrder)
			payments.POST("/capture_paypal_order", h.CapturePayPalOrder)
		}
	}

	return router
}

type resource struct {
	list, get, create, update, remove gin.HandlerFunc
}

// registerResource mounts the collection and detail routes of one
// resource. PUT and PATCH share the merge-patch handler.
func registerResource(g *gin.RouterGroup, path string, r resource) {
	g.GET(path, r.list)
	g.POST(path, r.create)
	g.GET(path+"/:id", r.get)
	g.PUT(path+"/:id", r.update)
	g.PATCH(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.remove)
}
