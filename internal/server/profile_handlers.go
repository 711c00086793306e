package server

import (
	"errors"

	"devlink/internal/github"
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileBody is the request shape shared by profile create and update.
type profileBody struct {
	Company       string `json:"company"`
	Website       string `json:"website"`
	Location      string `json:"location"`
	Bio           string `json:"bio"`
	Status        string `json:"status"`
	GithubProfile string `json:"githubprofile"`
	Skills        string `json:"skills"`
	Youtube       string `json:"youtube"`
	Twitter       string `json:"twitter"`
	Facebook      string `json:"facebook"`
	Linkedin      string `json:"linkedin"`
	Instagram     string `json:"instagram"`
}

// ListProfiles handles GET /api/profile.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profiles.List(c.Context())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profiles)
}

// GetMyProfile handles GET /api/profile/me. A user without a profile gets
// a 400, which the frontend uses to steer them to the create-profile page.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewNotFoundError("Profile"))
		}
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// GetProfileByUser handles GET /api/profile/user/:user_id.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	profile, err := s.profiles.GetByUserID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile, creating the caller's profile or
// replacing the fields of an existing one.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req profileBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.Upsert(c.Context(), currentUserID(c), service.UpsertProfileInput{
		Status:        req.Status,
		Skills:        req.Skills,
		Company:       req.Company,
		Website:       req.Website,
		Location:      req.Location,
		Bio:           req.Bio,
		GithubProfile: req.GithubProfile,
		Youtube:       req.Youtube,
		Twitter:       req.Twitter,
		Facebook:      req.Facebook,
		Linkedin:      req.Linkedin,
		Instagram:     req.Instagram,
	})
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile, removing the caller's profile
// and user record.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.users.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"message": "User successfully deleted."})
}

type experienceBody struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	StartDate   *string `json:"startdate"`
	EndDate     *string `json:"enddate"`
	Current     *bool   `json:"current"`
	Description *string `json:"description"`
}

func (b experienceBody) toInput() service.ExperienceInput {
	return service.ExperienceInput{
		Title:       b.Title,
		Company:     b.Company,
		Location:    b.Location,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Current:     b.Current,
		Description: b.Description,
	}
}

// AddExperience handles POST /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.AddExperience(c.Context(), currentUserID(c), req.toInput())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// UpdateExperience handles PUT /api/profile/experience/:exp_id. Omitted
// fields keep their stored values.
func (s *Server) UpdateExperience(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "exp_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	var req experienceBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.UpdateExperience(c.Context(), currentUserID(c), entryID, req.toInput())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "exp_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	profile, err := s.profiles.DeleteExperience(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

type educationBody struct {
	School       *string `json:"school"`
	Degree       *string `json:"degree"`
	FieldOfStudy *string `json:"fieldofstudy"`
	StartDate    *string `json:"startdate"`
	EndDate      *string `json:"enddate"`
	Current      *bool   `json:"current"`
	Courses      *string `json:"courses"`
}

func (b educationBody) toInput() service.EducationInput {
	return service.EducationInput{
		School:       b.School,
		Degree:       b.Degree,
		FieldOfStudy: b.FieldOfStudy,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Current:      b.Current,
		Courses:      b.Courses,
	}
}

// AddEducation handles POST /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.AddEducation(c.Context(), currentUserID(c), req.toInput())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// UpdateEducation handles PUT /api/profile/education/:edu_id.
func (s *Server) UpdateEducation(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "edu_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	var req educationBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.UpdateEducation(c.Context(), currentUserID(c), entryID, req.toInput())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "edu_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	profile, err := s.profiles.DeleteEducation(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username, returning the
// user's five most recent public repositories.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")

	repos, err := s.github.ListRepos(c.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrProfileNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Github profile"))
		}
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(repos)
}
