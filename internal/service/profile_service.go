package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// ProfileService manages profiles and their experience/education entries.
// Entries follow one protocol over two field sets: insert at front,
// find-by-id merge, delete-by-id.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput carries the profile fields; empty strings leave the
// stored value untouched on update.
type UpsertProfileInput struct {
	Status        string
	Skills        string
	Company       string
	Website       string
	Location      string
	Bio           string
	GithubProfile string
	Youtube       string
	Twitter       string
	Facebook      string
	Linkedin      string
	Instagram     string
}

// ExperienceInput enumerates the accepted experience fields. A nil field
// keeps the old value on update; title, company, and start date are
// required on add.
type ExperienceInput struct {
	Title       *string
	Company     *string
	Location    *string
	StartDate   *string
	EndDate     *string
	Current     *bool
	Description *string
}

// EducationInput enumerates the accepted education fields. Courses is a
// comma-separated list, split and trimmed on apply.
type EducationInput struct {
	School       *string
	Degree       *string
	FieldOfStudy *string
	StartDate    *string
	EndDate      *string
	Current      *bool
	Courses      *string
}

// NewProfileService creates a ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// List returns all profiles with their owning users.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// splitList turns a comma-separated string into a trimmed list, dropping
// empty segments.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Upsert creates the caller's profile or updates it in place. Status and
// skills are required; other fields overwrite only when supplied.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in UpsertProfileInput) (*models.Profile, error) {
	if in.Status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if in.Skills == "" {
		return nil, models.NewValidationError("Skills are required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !models.IsNotFound(err) {
			return nil, err
		}
		profile = &models.Profile{UserID: userID}
	}

	profile.Status = in.Status
	profile.Skills = splitList(in.Skills)
	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Website != "" {
		profile.Website = in.Website
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubProfile != "" {
		profile.GithubProfile = in.GithubProfile
	}
	if in.Youtube != "" {
		profile.Socials.Youtube = in.Youtube
	}
	if in.Twitter != "" {
		profile.Socials.Twitter = in.Twitter
	}
	if in.Facebook != "" {
		profile.Socials.Facebook = in.Facebook
	}
	if in.Linkedin != "" {
		profile.Socials.Linkedin = in.Linkedin
	}
	if in.Instagram != "" {
		profile.Socials.Instagram = in.Instagram
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// AddExperience inserts a new entry at the front of the owner's experience
// list and returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	if strOrEmpty(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strOrEmpty(in.Company) == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if strOrEmpty(in.StartDate) == "" {
		return nil, models.NewValidationError("Start date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       *in.Title,
		Company:     *in.Company,
		Location:    strOrEmpty(in.Location),
		StartDate:   *in.StartDate,
		EndDate:     strOrEmpty(in.EndDate),
		Description: strOrEmpty(in.Description),
	}
	if in.Current != nil {
		exp.Current = *in.Current
	}

	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateExperience merges the supplied fields over the entry with the given
// id. The entry id is immutable and omitted fields keep their old values.
func (s *ProfileService) UpdateExperience(ctx context.Context, userID, entryID uint, in ExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := findExperience(profile, entryID)
	if exp == nil {
		return nil, models.NewNotFoundError("Experience")
	}

	if in.Title != nil {
		exp.Title = *in.Title
	}
	if in.Company != nil {
		exp.Company = *in.Company
	}
	if in.Location != nil {
		exp.Location = *in.Location
	}
	if in.StartDate != nil {
		exp.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		exp.EndDate = *in.EndDate
	}
	if in.Current != nil {
		exp.Current = *in.Current
	}
	if in.Description != nil {
		exp.Description = *in.Description
	}

	if err := s.profileRepo.SaveExperience(ctx, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteExperience removes the entry with the given id; the relative order
// of the remaining entries is unchanged.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if findExperience(profile, entryID) == nil {
		return nil, models.NewNotFoundError("Experience")
	}

	if err := s.profileRepo.DeleteExperience(ctx, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation inserts a new entry at the front of the owner's education
// list. An absent courses field yields an empty list rather than an error.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	if strOrEmpty(in.School) == "" {
		return nil, models.NewValidationError("School is required")
	}
	if strOrEmpty(in.Degree) == "" {
		return nil, models.NewValidationError("Degree type is required")
	}
	if strOrEmpty(in.FieldOfStudy) == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	if strOrEmpty(in.StartDate) == "" {
		return nil, models.NewValidationError("Start date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       *in.School,
		Degree:       *in.Degree,
		FieldOfStudy: *in.FieldOfStudy,
		StartDate:    *in.StartDate,
		EndDate:      strOrEmpty(in.EndDate),
		Courses:      []string{},
	}
	if in.Current != nil {
		edu.Current = *in.Current
	}
	if in.Courses != nil {
		edu.Courses = splitList(*in.Courses)
	}

	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateEducation merges the supplied fields over the entry with the given id.
func (s *ProfileService) UpdateEducation(ctx context.Context, userID, entryID uint, in EducationInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := findEducation(profile, entryID)
	if edu == nil {
		return nil, models.NewNotFoundError("Education")
	}

	if in.School != nil {
		edu.School = *in.School
	}
	if in.Degree != nil {
		edu.Degree = *in.Degree
	}
	if in.FieldOfStudy != nil {
		edu.FieldOfStudy = *in.FieldOfStudy
	}
	if in.StartDate != nil {
		edu.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		edu.EndDate = *in.EndDate
	}
	if in.Current != nil {
		edu.Current = *in.Current
	}
	if in.Courses != nil {
		edu.Courses = splitList(*in.Courses)
	}

	if err := s.profileRepo.SaveEducation(ctx, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteEducation removes the entry with the given id.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if findEducation(profile, entryID) == nil {
		return nil, models.NewNotFoundError("Education")
	}

	if err := s.profileRepo.DeleteEducation(ctx, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Entry lists are bounded by human-authored content, so linear scans are fine.
func findExperience(profile *models.Profile, entryID uint) *models.Experience {
	for i := range profile.Experience {
		if profile.Experience[i].ID == entryID {
			return &profile.Experience[i]
		}
	}
	return nil
}

func findEducation(profile *models.Profile, entryID uint) *models.Education {
	for i := range profile.Education {
		if profile.Education[i].ID == entryID {
			return &profile.Education[i]
		}
	}
	return nil
}
