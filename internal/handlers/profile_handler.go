package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

// ProfileHandler handles the user profile, its preferences, the password and
// data exports.
type ProfileHandler struct {
	profileService  services.ProfileServicer
	exportService   services.ExportServicer
	activityService services.ActivityServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, exportService services.ExportServicer, activityService services.ActivityServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, exportService: exportService, activityService: activityService}
}

// CurrencyPayload is the currency display preference.
type CurrencyPayload struct {
	Code   string                  `json:"code" binding:"required,iso4217"`
	Symbol string                  `json:"symbol" binding:"required,max=8"`
	Format models.CurrencyPosition `json:"format" binding:"required,currency_position"`
}

func (p CurrencyPayload) toModel() models.CurrencyPreference {
	return models.CurrencyPreference{Code: p.Code, Symbol: p.Symbol, Format: p.Format}
}

// PreferencesPayload is a complete set of preferences.
type PreferencesPayload struct {
	EmailNotifications bool              `json:"emailNotifications"`
	PushNotifications  bool              `json:"pushNotifications"`
	MonthlyReport      bool              `json:"monthlyReport"`
	BudgetAlerts       bool              `json:"budgetAlerts"`
	Currency           CurrencyPayload   `json:"currency"`
	DateFormat         models.DateFormat `json:"dateFormat" binding:"required,date_format"`
	TimeFormat         models.TimeFormat `json:"timeFormat" binding:"required,time_format"`
}

func (p PreferencesPayload) toModel() models.Preferences {
	return models.Preferences{
		EmailNotifications: p.EmailNotifications,
		PushNotifications:  p.PushNotifications,
		MonthlyReport:      p.MonthlyReport,
		BudgetAlerts:       p.BudgetAlerts,
		Currency:           p.Currency.toModel(),
		DateFormat:         p.DateFormat,
		TimeFormat:         p.TimeFormat,
	}
}

// UpdateProfileRequest represents the request body for updating the profile.
// A provided preferences object replaces the stored one.
type UpdateProfileRequest struct {
	Name          *string               `json:"name" binding:"omitempty,min=1,max=100"`
	Email         *string               `json:"email" binding:"omitempty,email"`
	Avatar        *string               `json:"avatar" binding:"omitempty,max=500"`
	Currency      *string               `json:"currency" binding:"omitempty,iso4217"`
	Notifications *bool                 `json:"notifications"`
	DarkMode      *bool                 `json:"darkMode"`
	Language      *string               `json:"language" binding:"omitempty,bcp47_language_tag"`
	SecurityLevel *models.SecurityLevel `json:"securityLevel" binding:"omitempty,security_level"`
	Preferences   *PreferencesPayload   `json:"preferences"`
}

// UpdatePreferencesRequest represents the request body for updating
// preferences. A provided currency object replaces the stored one.
type UpdatePreferencesRequest struct {
	EmailNotifications *bool              `json:"emailNotifications"`
	PushNotifications  *bool              `json:"pushNotifications"`
	MonthlyReport      *bool              `json:"monthlyReport"`
	BudgetAlerts       *bool              `json:"budgetAlerts"`
	Currency           *CurrencyPayload   `json:"currency"`
	DateFormat         *models.DateFormat `json:"dateFormat" binding:"omitempty,date_format"`
	TimeFormat         *models.TimeFormat `json:"timeFormat" binding:"omitempty,time_format"`
}

// ChangePasswordRequest represents the request body for changing the password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// GetProfile returns the user profile
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Success     200 {object} models.UserProfile
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": h.profileService.GetProfile()})
}

// UpdateProfile merges the provided fields into the profile
// @Summary     Update profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body UpdateProfileRequest true "Fields to change"
// @Success     200 {object} models.UserProfile
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.ProfileUpdate{
		Name:          req.Name,
		Email:         req.Email,
		Avatar:        req.Avatar,
		Currency:      req.Currency,
		Notifications: req.Notifications,
		DarkMode:      req.DarkMode,
		Language:      req.Language,
		SecurityLevel: req.SecurityLevel,
	}
	if req.Preferences != nil {
		prefs := req.Preferences.toModel()
		update.Preferences = &prefs
	}

	profile := h.profileService.UpdateProfile(update)

	h.activityService.Log("UPDATE_PROFILE", "profile", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdatePreferences merges the provided fields into the preferences
// @Summary     Update preferences
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body UpdatePreferencesRequest true "Preferences to change"
// @Success     200 {object} models.UserProfile
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /profile/preferences [patch]
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.PreferencesUpdate{
		EmailNotifications: req.EmailNotifications,
		PushNotifications:  req.PushNotifications,
		MonthlyReport:      req.MonthlyReport,
		BudgetAlerts:       req.BudgetAlerts,
		DateFormat:         req.DateFormat,
		TimeFormat:         req.TimeFormat,
	}
	if req.Currency != nil {
		currency := req.Currency.toModel()
		update.Currency = &currency
	}

	profile := h.profileService.UpdatePreferences(update)

	h.activityService.Log("UPDATE_PREFERENCES", "profile", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ChangePassword changes the account password
// @Summary     Change password
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body ChangePasswordRequest true "Current and new password"
// @Success     200 {object} map[string]string
// @Failure     400 {object} ErrorResponse "Invalid input, mismatch or weak password"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.profileService.ChangePassword(req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("CHANGE_PASSWORD", "profile", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ExportData writes a bundle of the user's data to the export sink
// @Summary     Export user data
// @Description Writes profile, transactions and budgets as JSON and returns where it was stored
// @Tags        profile
// @Produce     json
// @Success     200 {object} services.ExportResult
// @Failure     502 {object} ErrorResponse "Export failed"
// @Router      /profile/export [post]
func (h *ProfileHandler) ExportData(c *gin.Context) {
	result, err := h.exportService.ExportUserData(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log("EXPORT_DATA", "profile", "", c.ClientIP(),
		map[string]interface{}{"location": result.Location})

	c.JSON(http.StatusOK, result)
}
