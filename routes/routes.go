package routes

import (
	"time"

	"asset_circulation_engine/app"
	"asset_circulation_engine/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	assetCtl := controllers.NewAssetController(s)
	asgCtl := controllers.NewAssignmentController(s)
	circCtl := controllers.NewCirculationController(s)
	userCtl := controllers.NewUserController(s)
	auditCtl := controllers.NewAuditController(s)

	authMW := app.AuthRequired(a.Sessions(), a.Repo)
	seenMW := app.TouchLastSeen(a.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", s.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", s.Logout)
		authed.GET("/whoami", s.Whoami)
	}

	// ------------------------------
	// Users (admin)
	// ------------------------------
	users := r.Group("/api/users", authMW, app.PermissionRequired("users", "manage"))
	{
		users.POST("", userCtl.CreateUser)
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Assets
	// ------------------------------
	assetsAdmin := r.Group("/api/assets", authMW, app.PermissionRequired("assets", "create"))
	{
		assetsAdmin.POST("", assetCtl.CreateAsset)
	}
	assets := r.Group("/api/assets", authMW, seenMW)
	{
		assets.GET("", assetCtl.ListAssets)
		assets.GET("/borrowable", assetCtl.ListBorrowable)
		assets.GET("/:id", assetCtl.GetAsset)
	}

	// ------------------------------
	// Assignments + circulation
	// ------------------------------
	asg := r.Group("/api/assignments", authMW, seenMW)
	{
		asg.POST("", app.PermissionRequired("assignments", "create"), asgCtl.CreateAssignment)
		asg.GET("", asgCtl.ListAssignments)
		asg.GET("/:id", asgCtl.GetAssignment)
		asg.POST("/:id/close", app.PermissionRequired("assignments", "close"), asgCtl.CloseAssignment)
		asg.DELETE("/:id", app.PermissionRequired("assignments", "delete"), asgCtl.DeleteAssignment)

		asg.POST("/:id/borrows", app.PermissionRequired("circulation", "borrow"), circCtl.OpenBorrow)
		asg.POST("/:id/returns", app.PermissionRequired("circulation", "return"), circCtl.CloseReturn)
	}

	borrows := r.Group("/api/borrows", authMW, seenMW)
	{
		borrows.GET("/:id", circCtl.GetBorrow)
		borrows.POST("/:id/sign", app.PermissionRequired("circulation", "sign"), circCtl.SignBorrow)
		borrows.DELETE("/:id", app.PermissionRequired("circulation", "reverse"), circCtl.DeleteBorrow)
	}

	// ------------------------------
	// Audit (read only)
	// ------------------------------
	audit := r.Group("/api/audit", authMW, app.PermissionRequired("audit", "read"))
	{
		audit.GET("", auditCtl.ListAuditLogs)
	}
}
