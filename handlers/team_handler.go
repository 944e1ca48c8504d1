package handlers

import (
	"net/http"

	"cleanops-backend/models"
	"cleanops-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler handles HTTP requests for cleaning teams
type TeamHandler struct {
	teamRepo *repository.TeamRepository
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamRepo *repository.TeamRepository) *TeamHandler {
	return &TeamHandler{teamRepo: teamRepo}
}

// CreateTeamRequest represents the request body for creating a team
type CreateTeamRequest struct {
	Name          string `json:"name" binding:"required"`
	LeaderName    string `json:"leader_name" binding:"required"`
	Phone         string `json:"phone"`
	MemberCount   int    `json:"member_count"`
	GSTRegistered bool   `json:"gst_registered"`
}

// CreateTeam handles POST /api/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	team := &models.Team{
		Name:          req.Name,
		LeaderName:    req.LeaderName,
		Phone:         req.Phone,
		MemberCount:   req.MemberCount,
		GSTRegistered: req.GSTRegistered,
		Active:        true,
	}

	if err := h.teamRepo.Create(c.Request.Context(), team); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    team,
	})
}

// GetTeam handles GET /api/teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid team ID format",
			},
		})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Team not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    team,
	})
}

// UpdateTeamRequest represents the request body for updating a team
type UpdateTeamRequest struct {
	Name          string `json:"name" binding:"required"`
	LeaderName    string `json:"leader_name" binding:"required"`
	Phone         string `json:"phone"`
	MemberCount   int    `json:"member_count"`
	GSTRegistered bool   `json:"gst_registered"`
	Active        bool   `json:"active"`
}

// UpdateTeam handles PUT /api/teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid team ID format",
			},
		})
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Team not found",
			},
		})
		return
	}

	team.Name = req.Name
	team.LeaderName = req.LeaderName
	team.Phone = req.Phone
	team.MemberCount = req.MemberCount
	team.GSTRegistered = req.GSTRegistered
	team.Active = req.Active

	if err := h.teamRepo.Update(c.Request.Context(), team); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    team,
	})
}

// ListTeams handles GET /api/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	teams, err := h.teamRepo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    teams,
	})
}
