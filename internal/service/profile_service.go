package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

const nicknameAttempts = 5

var errNicknameTaken = apperror.Conflict("nickname is already in use")

// ProfileService manages user profiles, creating them lazily
type ProfileService struct {
	identity *IdentityService
	profiles ProfileStore
	newID    func() string
}

func NewProfileService(identity *IdentityService, profiles ProfileStore) *ProfileService {
	return &ProfileService{identity: identity, profiles: profiles, newID: uuid.NewString}
}

// Get returns the profile of email, or of the caller when email is empty
// or the caller's own. The caller is provisioned on first sight and a
// missing profile is created with a placeholder nickname; created reports
// whether that happened.
func (s *ProfileService) Get(ctx context.Context, p auth.Principal, email string) (profile *model.UserProfile, created bool, err error) {
	var user *model.User
	email = strings.TrimSpace(email)
	if email == "" || email == p.Email {
		user, err = s.identity.Resolve(ctx, p)
	} else {
		user, err = s.identity.ByEmail(ctx, email, "user")
	}
	if err != nil {
		return nil, false, err
	}
	return s.findOrCreate(ctx, user.Email)
}

// Update edits the caller's own profile. Fields left nil are unchanged.
func (s *ProfileService) Update(ctx context.Context, p auth.Principal, email string, req model.UpdateProfileRequest) (*model.UserProfile, bool, error) {
	user, err := s.ownUser(ctx, p, email)
	if err != nil {
		return nil, false, err
	}

	var nickname string
	if req.Nickname != nil {
		nickname = strings.TrimSpace(*req.Nickname)
	}
	if err := validation.MaxLength("nickname", nickname, validation.MaxNickname); err != nil {
		return nil, false, err
	}
	for _, f := range []struct {
		name string
		v    *string
		max  int
	}{
		{"profileImageUrl", req.ProfileImageURL, validation.MaxProfileImageURL},
		{"gender", req.Gender, validation.MaxGender},
		{"ageRange", req.AgeRange, validation.MaxAgeRange},
		{"bio", req.Bio, validation.MaxBio},
	} {
		if err := validation.MaxLengthPtr(f.name, f.v, f.max); err != nil {
			return nil, false, err
		}
	}

	profile, err := s.profiles.FindByEmail(ctx, user.Email)
	created := false
	switch {
	case repository.IsNotFound(err):
		profile, err = s.newProfile(ctx, user.Email, nickname)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	}

	if nickname != "" && nickname != profile.Nickname {
		taken, err := s.profiles.NicknameTaken(ctx, nickname, user.Email)
		if err != nil {
			return nil, false, err
		}
		if taken {
			return nil, false, errNicknameTaken
		}
		profile.Nickname = nickname
	}
	applyProfileFields(profile, req)

	if err := s.profiles.Save(ctx, profile); err != nil {
		if repository.IsDuplicate(err) {
			return nil, false, errNicknameTaken
		}
		return nil, false, err
	}
	return profile, created, nil
}

// UpdateImage sets the caller's profile image URL
func (s *ProfileService) UpdateImage(ctx context.Context, p auth.Principal, email, url string) (string, error) {
	if err := validation.MaxLength("profileImageUrl", url, validation.MaxProfileImageURL); err != nil {
		return "", err
	}
	user, err := s.ownUser(ctx, p, email)
	if err != nil {
		return "", err
	}
	profile, _, err := s.findOrCreate(ctx, user.Email)
	if err != nil {
		return "", err
	}
	profile.ProfileImageURL = url
	if err := s.profiles.Save(ctx, profile); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) ownUser(ctx context.Context, p auth.Principal, email string) (*model.User, error) {
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email != "" && email != user.Email {
		return nil, apperror.Forbidden("you can only edit your own profile")
	}
	return user, nil
}

func (s *ProfileService) findOrCreate(ctx context.Context, email string) (*model.UserProfile, bool, error) {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err == nil {
		return profile, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, err
	}
	profile, err = s.newProfile(ctx, email, "")
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

// newProfile inserts an empty profile. With no nickname a unique
// placeholder is generated. If a concurrent request created the profile
// first, that row is returned.
func (s *ProfileService) newProfile(ctx context.Context, email, nickname string) (*model.UserProfile, error) {
	for attempt := 0; attempt < nicknameAttempts; attempt++ {
		nick := nickname
		if nick == "" {
			nick = s.placeholderNickname()
		}
		taken, err := s.profiles.NicknameTaken(ctx, nick, email)
		if err != nil {
			return nil, err
		}
		if taken {
			if nickname != "" {
				return nil, errNicknameTaken
			}
			continue
		}

		profile := model.NewUserProfile(email, nick)
		err = s.profiles.Create(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if !repository.IsDuplicate(err) {
			return nil, err
		}
		if existing, findErr := s.profiles.FindByEmail(ctx, email); findErr == nil {
			return existing, nil
		}
		if nickname != "" {
			return nil, errNicknameTaken
		}
	}
	return nil, apperror.Conflict("could not allocate a unique nickname")
}

func (s *ProfileService) placeholderNickname() string {
	return "traveler_" + strings.ReplaceAll(s.newID(), "-", "")[:10]
}

func applyProfileFields(p *model.UserProfile, req model.UpdateProfileRequest) {
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.ProfileImageURL != nil {
		p.ProfileImageURL = *req.ProfileImageURL
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.AgeRange != nil {
		p.AgeRange = *req.AgeRange
	}
	if req.TravelStyles != nil {
		p.TravelStyles = req.TravelStyles
	}
	if req.Interests != nil {
		p.Interests = req.Interests
	}
	if req.PreferredDestinations != nil {
		p.PreferredDestinations = req.PreferredDestinations
	}
}
