package http

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check routes (public)
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/health/live", s.handleLivenessCheck)
	s.echo.GET("/health/ready", s.handleReadinessCheck)

	// Public auth routes
	auth := s.echo.Group("/api/auth")
	auth.POST("/login", s.handleLogin, s.loginLimiter.Middleware())

	// Protected routes (require authentication)
	protected := s.echo.Group("/api")
	protected.Use(s.RequireAuth())

	// Auth (authenticated)
	protected.POST("/auth/logout", s.handleLogout)
	protected.GET("/auth/me", s.handleMe)
	protected.PUT("/auth/password", s.handleChangePassword)

	// Reference data
	protected.GET("/zones", s.handleListZones)
	protected.GET("/locations", s.handleListLocations)
	protected.GET("/locations/:id", s.handleGetLocation)
	protected.GET("/forms", s.handleListForms)
	protected.GET("/forms/:id", s.handleGetForm)
	protected.GET("/penalty-rates", s.handlePenaltyRates)
	protected.GET("/discrepancy-options", s.handleDiscrepancyOptions)

	// File uploads (inspection photos, CDR attachments, signatures)
	protected.POST("/uploads", s.handleUploadFile)

	// Inspection reports
	protected.POST("/reports", s.handleCreateReport)
	protected.POST("/reports/batch", s.handleCreateReportBatch)
	protected.GET("/reports", s.handleListReports)
	protected.GET("/reports/:id", s.handleGetReport)
	protected.PUT("/reports/:id", s.handleUpdateReport)
	protected.POST("/reports/:id/submit", s.handleSubmitReport)

	// CDRs
	protected.POST("/cdrs", s.handleCreateCDR)
	protected.GET("/cdrs", s.handleListCDRs)
	protected.GET("/cdrs/:id", s.handleGetCDR)
	protected.PUT("/cdrs/:id", s.handleUpdateCDR)
	protected.POST("/cdrs/:id/submit", s.handleSubmitCDR)

	// Notifications
	protected.GET("/notifications", s.handleListNotifications)
	protected.POST("/notifications/:id/read", s.handleMarkNotificationRead)
	protected.POST("/notifications/read-all", s.handleMarkAllNotificationsRead)

	// Dashboard (inspector view)
	protected.GET("/dashboard/my-performance", s.handleMyPerformance)

	// Supervisor-only routes
	supervisor := protected.Group("", s.RequireSupervisor())

	// Users
	supervisor.GET("/users", s.handleListUsers)
	supervisor.POST("/users", s.handleCreateUser)
	supervisor.PUT("/users/:id", s.handleUpdateUser)
	supervisor.DELETE("/users/:id", s.handleDeleteUser)

	// Report review
	supervisor.PUT("/reports/:id/supervisor-comment", s.handleSetSupervisorComment)
	supervisor.PUT("/reports/:id/status", s.handleUpdateReportStatus)

	// CDR approval
	supervisor.POST("/cdrs/:id/approve", s.handleApproveCDR)

	// Penalty invoices
	supervisor.GET("/invoices", s.handleListInvoices)
	supervisor.GET("/invoices/:id", s.handleGetInvoice)
	supervisor.POST("/invoices/:id/approve-deduction", s.handleApproveDeduction)

	// Global penalty statements
	supervisor.POST("/statements", s.handleGenerateStatement)
	supervisor.GET("/statements", s.handleListStatements)
	supervisor.GET("/statements/:id", s.handleGetStatement)
	supervisor.GET("/statements/:id/refresh-preview", s.handlePreviewRefresh)
	supervisor.POST("/statements/:id/refresh", s.handleCommitRefresh)
	supervisor.POST("/statements/:id/items", s.handleAddStatementItem)
	supervisor.PUT("/statements/:id/items/:itemId", s.handleUpdateStatementItem)
	supervisor.DELETE("/statements/:id/items/:itemId", s.handleDeleteStatementItem)
	supervisor.PUT("/statements/:id/comment", s.handleSetManagerComment)
	supervisor.POST("/statements/:id/approve", s.handleApproveStatement)
	supervisor.GET("/statements/:id/export", s.handleExportStatement)

	// Dashboard (supervisor view)
	supervisor.GET("/dashboard/stats", s.handleDashboardStats)
	supervisor.GET("/dashboard/hotspots", s.handleRiskHotspots)
	supervisor.GET("/dashboard/critical-reports", s.handleCriticalReports)
	supervisor.GET("/dashboard/item-stats", s.handleItemStats)
	supervisor.GET("/dashboard/inspectors", s.handleInspectorRanking)
}
