package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/buzzboard/buzzboard/internal/app/system/mongoerr"
	"github.com/buzzboard/buzzboard/internal/app/system/normalize"
	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c          *mongo.Collection
	bcryptCost int
}

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrInvalidCredentials is returned for unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

func New(db *mongo.Database, bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{c: db.Collection("users"), bcryptCost: bcryptCost}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates an account in the role-unset onboarding state:
// role=user, profileStatus=INCOMPLETE. The password is hashed before
// storage; an invalid location is dropped rather than rejected.
func (s *Store) Register(ctx context.Context, u models.User, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Password = string(hash)
	u.Role = models.RoleUser
	u.ProfileStatus = models.ProfileIncomplete
	if !u.Location.Valid() {
		u.Location = nil
	}
	if u.JoinedClubs == nil {
		u.JoinedClubs = []primitive.ObjectID{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if mongoerr.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate compares the password against the stored hash and returns
// the account. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if mongoerr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ProfileUpdate holds the whitelisted PUT /auth/me fields. Nil pointers
// mean "leave unchanged".
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	Phone         *string
	Gender        *string
	College       *string
	Course        *string
	Year          *string
	Interests     []string
	ResumeURL     *string
	Address       *string
	AvatarURL     *string
	LogoURL       *string
	ProfileStatus *string
	Role          *string
	Location      *models.GeoPoint
}

// UpdateProfile applies a whitelisted profile update. The role field is
// the one onboarding-sensitive part: it is only applied while the stored
// profileStatus is INCOMPLETE, expressed as a filter on the same single
// document update so a concurrent completion cannot race a role change.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}

	assign := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	assign("bio", upd.Bio)
	assign("phone", upd.Phone)
	assign("gender", upd.Gender)
	assign("college", upd.College)
	assign("course", upd.Course)
	assign("year", upd.Year)
	assign("resumeUrl", upd.ResumeURL)
	assign("address", upd.Address)
	assign("avatarUrl", upd.AvatarURL)
	assign("logoUrl", upd.LogoURL)
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Interests != nil {
		set["interests"] = upd.Interests
	}
	if upd.Location.Valid() {
		set["location"] = upd.Location
	}
	if upd.ProfileStatus != nil &&
		(*upd.ProfileStatus == models.ProfileIncomplete || *upd.ProfileStatus == models.ProfileComplete) {
		set["profileStatus"] = *upd.ProfileStatus
	}

	if upd.Role != nil && (*upd.Role == models.RoleUser || *upd.Role == models.RoleAdmin) {
		// Role changes are gated on the stored status, not the caller's
		// claim. After completion the role write silently no-ops.
		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id, "profileStatus": models.ProfileIncomplete},
			bson.M{"$set": bson.M{"role": *upd.Role}})
		if err != nil {
			return nil, err
		}
		_ = res // a zero match is "rejected or ignored", not an error
	}

	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// CompleteAdminOnboarding is the single write coupling club creation to
// the creator's identity: role becomes admin, the profile is marked
// complete, and the new club lands in joinedClubs. Making it one store
// operation keeps the cross-entity invariant visible in code.
func (s *Store) CompleteAdminOnboarding(ctx context.Context, userID, clubID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"role":          models.RoleAdmin,
			"profileStatus": models.ProfileComplete,
			"updatedAt":     time.Now().UTC(),
		},
		"$addToSet": bson.M{"joinedClubs": clubID},
	})
	return err
}

// AddJoinedClub records the membership back-reference after a join
// request is approved. This is a separate write from the club-side
// member add; a crash between the two leaves a reconciliable
// inconsistency, not corruption.
func (s *Store) AddJoinedClub(ctx context.Context, userID, clubID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"joinedClubs": clubID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// GetManyBrief loads the given users with only the fields a club owner
// may see about their members.
func (s *Store) GetManyBrief(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchAuthInfo implements auth.UserFetcher: fresh role and profile
// status for the onboarding gate.
func (s *Store) FetchAuthInfo(ctx context.Context, id primitive.ObjectID) (string, string, error) {
	var u struct {
		Role          string `bson:"role"`
		ProfileStatus string `bson:"profileStatus"`
	}
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return "", "", err
	}
	return u.Role, u.ProfileStatus, nil
}
