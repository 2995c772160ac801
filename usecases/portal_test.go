package usecases

import (
	"strings"
	"testing"
	"time"

	"sage-portal/auth"
	"sage-portal/db"
	"sage-portal/entities"
	"sage-portal/repositories"
	"sage-portal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	profiles       repositories.ProfileRepository
	tokens         *auth.TokenManager
	auth           *AuthUseCase
	profile        *ProfileUseCase
	invitations    *InvitationUseCase
	catalog        *CatalogUseCase
	testimonials   *TestimonialUseCase
	blog           *BlogUseCase
	clientServices *ClientServiceUseCase
	meetings       *MeetingUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store, err := storage.NewLocalStore(t.TempDir(), "https://portal.example.com")
	require.NoError(t, err)

	profiles := repositories.NewProfilePgRepository(database)
	tokens := auth.NewTokenManager("0123456789abcdef0123", time.Hour)
	return &fixture{
		profiles:       profiles,
		tokens:         tokens,
		auth:           NewAuthUseCase(profiles, tokens),
		profile:        NewProfileUseCase(profiles),
		invitations:    NewInvitationUseCase(profiles, tokens, "https://portal.example.com/"),
		catalog:        NewCatalogUseCase(repositories.NewServicePgRepository(database)),
		testimonials:   NewTestimonialUseCase(repositories.NewTestimonialPgRepository(database)),
		blog:           NewBlogUseCase(repositories.NewBlogPgRepository(database)),
		clientServices: NewClientServiceUseCase(repositories.NewClientServicePgRepository(database), repositories.NewDocumentPgRepository(database), profiles, store),
		meetings:       NewMeetingUseCase(repositories.NewMeetingPgRepository(database), profiles),
	}
}

func (f *fixture) signUp(t *testing.T, email string) *entities.Profile {
	t.Helper()
	session, err := f.auth.SignUp(SignUpRequest{Email: email, Password: "motdepasse", FullName: "Test " + email})
	require.NoError(t, err)
	return session.User
}

func strPtr(s string) *string { return &s }

func TestAuthUseCase_SignUpAndSignIn(t *testing.T) {
	f := newFixture(t)

	session, err := f.auth.SignUp(SignUpRequest{Email: " Alice@Example.com ", Password: "motdepasse", FullName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.Equal(t, entities.RoleClient, session.User.Role)
	assert.Equal(t, entities.StatusActive, session.User.Status)
	assert.NotNil(t, session.User.ClientSince)
	assert.Contains(t, session.Permissions, auth.PermReadDocuments)

	claims, err := f.tokens.Parse(session.Token, auth.PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.Subject)

	_, err = f.auth.SignUp(SignUpRequest{Email: "alice@example.com", Password: "motdepasse"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	_, err = f.auth.SignUp(SignUpRequest{Email: "not-an-email", Password: "motdepasse"})
	assert.ErrorIs(t, err, auth.ErrEmailInvalid)
	_, err = f.auth.SignUp(SignUpRequest{Email: "bob@example.com", Password: "court"})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = f.auth.SignIn("alice@example.com", "mauvais mot")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = f.auth.SignIn("nobody@example.com", "motdepasse")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	signedIn, err := f.auth.SignIn("ALICE@example.com", "motdepasse")
	require.NoError(t, err)
	assert.NotNil(t, signedIn.User.LastLogin)

	inactive := "inactive"
	_, err = f.profile.UpdateProfile(session.User.ID, ProfileUpdate{Status: &inactive})
	require.NoError(t, err)
	_, err = f.auth.SignIn("alice@example.com", "motdepasse")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestAuthUseCase_PasswordReset(t *testing.T) {
	f := newFixture(t)
	alice := f.signUp(t, "alice@example.com")

	token, err := f.auth.RequestPasswordReset("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = f.auth.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.auth.ResetPassword(token, "nouveau-secret"))
	_, err = f.auth.SignIn("alice@example.com", "nouveau-secret")
	require.NoError(t, err)

	session, _, err := f.tokens.IssueSession(alice.ID, alice.Email, alice.Role)
	require.NoError(t, err)
	assert.ErrorIs(t, f.auth.ResetPassword(session, "autre-secret"), auth.ErrInvalidToken)

	require.NoError(t, f.auth.UpdatePassword(alice.ID, "troisieme-secret"))
	_, err = f.auth.SignIn("alice@example.com", "troisieme-secret")
	assert.NoError(t, err)
}

func TestInvitationUseCase(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invitations.Invite(InviteRequest{Email: "carla@example.com", FullName: "Carla"})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, inv.Profile.Status)
	assert.Equal(t, "1C Gestion", inv.Profile.Company)
	assert.True(t, strings.HasPrefix(inv.ActivationURL, "https://portal.example.com/client-activation?token="))
	assert.Contains(t, inv.Instructions, "=== INVITATION CLIENT SAGE 100 ===")
	assert.Contains(t, inv.Instructions, "Bonjour Carla,")
	assert.Contains(t, inv.Instructions, inv.ActivationURL)
	assert.Contains(t, inv.Instructions, "🔒 Ce lien expire dans 7 jours.")

	_, err = f.invitations.Invite(InviteRequest{Email: "carla@example.com"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	_, err = f.invitations.Invite(InviteRequest{Email: "dan@example.com", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.auth.SignIn("carla@example.com", "motdepasse")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "pending profiles have no password")

	reminder, err := f.invitations.Resend(inv.Profile.ID)
	require.NoError(t, err)
	assert.Contains(t, reminder.Instructions, "RAPPEL INVITATION")
	assert.Contains(t, reminder.Instructions, "Ce nouveau lien remplace le précédent.")

	stale := strings.TrimPrefix(inv.ActivationURL, "https://portal.example.com/client-activation?token=")
	_, err = f.invitations.Activate(stale, "bienvenue!")
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "a resent invitation replaces the first link")

	token := strings.TrimPrefix(reminder.ActivationURL, "https://portal.example.com/client-activation?token=")
	profile, err := f.invitations.Activate(token, "bienvenue!")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusActive, profile.Status)

	_, err = f.auth.SignIn("carla@example.com", "bienvenue!")
	require.NoError(t, err)

	_, err = f.invitations.Activate(token, "bienvenue!")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = f.invitations.Resend(inv.Profile.ID)
	assert.ErrorIs(t, err, ErrInvalid)

	admin, err := f.invitations.Invite(InviteRequest{Email: "eve@example.com", Role: entities.RoleAdmin, FullName: "Eve"})
	require.NoError(t, err)
	assert.Contains(t, admin.Instructions, "👤 Rôle: Administrateur")
	assert.Contains(t, admin.Instructions, "Accédez à votre espace administrateur")
}

func TestProfileUseCase(t *testing.T) {
	f := newFixture(t)
	alice := f.signUp(t, "alice@example.com")

	admin := entities.RoleAdmin
	updated, err := f.profile.UpdateOwnProfile(alice.ID, ProfileUpdate{Company: strPtr(" ACME "), Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, "ACME", updated.Company)
	assert.Equal(t, entities.RoleClient, updated.Role, "users cannot promote themselves")

	_, err = f.profile.UpdateProfile(alice.ID, ProfileUpdate{Role: strPtr("owner")})
	assert.ErrorIs(t, err, ErrInvalid)

	clients, err := f.profile.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	_, err = f.profile.ListProfiles("owner")
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, f.profile.DeleteProfile(alice.ID))
	_, err = f.profile.GetProfile(alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.profile.DeleteProfile(alice.ID), ErrNotFound)
}

func TestCatalogUseCase(t *testing.T) {
	f := newFixture(t)

	err := f.catalog.CreateService(&entities.Service{Title: "Sage 100"})
	assert.ErrorIs(t, err, ErrInvalid)

	service := &entities.Service{
		Title:       "Sage 100 Comptabilité",
		Description: "Mise en place et suivi",
		IsActive:    true,
		Features:    []entities.ServiceFeature{{Name: "Plan comptable"}},
	}
	require.NoError(t, f.catalog.CreateService(service))

	feature := &entities.ServiceFeature{Name: "Rapprochement bancaire"}
	require.NoError(t, f.catalog.AddFeature(service.ID, feature))
	got, err := f.catalog.GetService(service.ID)
	require.NoError(t, err)
	assert.Len(t, got.Features, 2)

	featured := true
	_, err = f.catalog.UpdateService(service.ID, ServiceUpdate{Featured: &featured})
	require.NoError(t, err)
	list, err := f.catalog.FeaturedServices()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.catalog.UpdateService(service.ID, ServiceUpdate{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, f.catalog.DeleteFeature(feature.ID))
	assert.ErrorIs(t, f.catalog.DeleteFeature(feature.ID), ErrNotFound)

	require.NoError(t, f.catalog.DeleteService(service.ID))
	_, err = f.catalog.GetService(service.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestimonialUseCase(t *testing.T) {
	f := newFixture(t)
	alice := f.signUp(t, "alice@example.com")

	for _, rating := range []int{0, 6} {
		_, err := f.testimonials.CreateTestimonial(alice.ID, TestimonialRequest{Content: "Bien", Rating: rating})
		assert.ErrorIs(t, err, ErrInvalid)
	}
	_, err := f.testimonials.CreateTestimonial(alice.ID, TestimonialRequest{Content: " ", Rating: 5})
	assert.ErrorIs(t, err, ErrInvalid)

	tm, err := f.testimonials.CreateTestimonial(alice.ID, TestimonialRequest{Content: "Très professionnel", Rating: 5, ServiceID: strPtr("")})
	require.NoError(t, err)
	assert.False(t, tm.IsApproved)
	assert.Nil(t, tm.ServiceID)

	approved, err := f.testimonials.ApprovedTestimonials()
	require.NoError(t, err)
	assert.Empty(t, approved)

	tm, err = f.testimonials.ApproveTestimonial(tm.ID, true)
	require.NoError(t, err)
	assert.True(t, tm.IsFeatured)

	featured, err := f.testimonials.FeaturedTestimonials()
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	unapproved := false
	tm, err = f.testimonials.UpdateTestimonial(tm.ID, TestimonialUpdate{IsApproved: &unapproved})
	require.NoError(t, err)
	assert.False(t, tm.IsFeatured, "hidden testimonials lose their featured flag")

	mine, err := f.testimonials.UserTestimonials(alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, f.testimonials.DeleteTestimonial(tm.ID))
	assert.ErrorIs(t, f.testimonials.DeleteTestimonial(tm.ID), ErrNotFound)
}

func TestBlogUseCase(t *testing.T) {
	f := newFixture(t)
	author := &entities.Profile{ID: "author-1", FullName: "Briane"}

	first, err := f.blog.CreatePost(author, BlogPostRequest{Title: "Clôture annuelle : les étapes", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "cloture-annuelle-les-etapes", first.Slug)
	assert.Equal(t, "Briane", first.AuthorName)

	second, err := f.blog.CreatePost(author, BlogPostRequest{Title: "Clôture annuelle : les étapes", Content: "...", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "cloture-annuelle-les-etapes-2", second.Slug)

	custom, err := f.blog.CreatePost(nil, BlogPostRequest{Title: "Autre", Slug: "Mon Slug Perso", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "mon-slug-perso", custom.Slug)

	_, err = f.blog.CreatePost(nil, BlogPostRequest{Title: "Sans contenu"})
	assert.ErrorIs(t, err, ErrInvalid)

	published, err := f.blog.PublishedPosts()
	require.NoError(t, err)
	assert.Len(t, published, 1)

	_, err = f.blog.GetBySlug(first.Slug, false)
	assert.ErrorIs(t, err, ErrNotFound, "drafts are hidden from visitors")
	_, err = f.blog.GetBySlug(first.Slug, true)
	assert.NoError(t, err)

	toggled, err := f.blog.TogglePublish(first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Published)

	updated, err := f.blog.UpdatePost(first.ID, BlogPostUpdate{Slug: strPtr("cloture-annuelle-les-etapes")})
	require.NoError(t, err)
	assert.Equal(t, "cloture-annuelle-les-etapes", updated.Slug, "a post keeps its own slug")

	require.NoError(t, f.blog.DeletePost(custom.ID))
	again, err := f.blog.CreatePost(nil, BlogPostRequest{Title: "Mon slug perso", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "mon-slug-perso-2", again.Slug)
}

func TestClientServiceUseCase(t *testing.T) {
	f := newFixture(t)
	alice := f.signUp(t, "alice@example.com")
	bob := f.signUp(t, "bob@example.com")

	_, err := f.clientServices.CreateClientService(ClientServiceRequest{UserID: alice.ID, Title: "Audit", Status: "Perdu"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = f.clientServices.CreateClientService(ClientServiceRequest{UserID: "ghost", Title: "Audit"})
	assert.ErrorIs(t, err, ErrNotFound)

	cs, err := f.clientServices.CreateClientService(ClientServiceRequest{UserID: alice.ID, Title: "Audit"})
	require.NoError(t, err)
	assert.Equal(t, entities.ClientServicePlanned, cs.Status)
	assert.False(t, cs.ServiceDate.IsZero())

	inProgress := entities.ClientServiceInProgress
	cs, err = f.clientServices.UpdateClientService(cs.ID, ClientServiceUpdate{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, "En cours", cs.Status)

	_, err = f.clientServices.GetClientServiceFor(cs.ID, bob.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.clientServices.GetClientServiceFor(cs.ID, bob.ID, true)
	assert.NoError(t, err)

	doc, err := f.clientServices.UploadDocument(cs.ID, Upload{
		FileName: "rapport-audit.PDF",
		Body:     strings.NewReader("%PDF-1.4\n%%EOF\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rapport-audit", doc.Title)
	assert.Equal(t, "application/pdf", doc.FileType)
	assert.True(t, strings.HasPrefix(doc.FileURL, "https://portal.example.com/files/client-services/"+cs.ID+"/"))
	assert.True(t, strings.HasSuffix(doc.FileURL, ".pdf"))

	require.NoError(t, f.clientServices.CreateDocument(cs.ID, &entities.Document{Title: "Devis", FileURL: "https://example.com/devis.pdf"}))
	assert.ErrorIs(t, f.clientServices.CreateDocument(cs.ID, &entities.Document{Title: "Sans fichier"}), ErrInvalid)

	docs, err := f.clientServices.Documents(cs.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	renamed, err := f.clientServices.UpdateDocument(doc.ID, DocumentUpdate{Title: strPtr("Rapport final")})
	require.NoError(t, err)
	assert.Equal(t, "Rapport final", renamed.Title)

	require.NoError(t, f.clientServices.DeleteDocument(doc.ID))
	assert.ErrorIs(t, f.clientServices.DeleteDocument(doc.ID), ErrNotFound)

	list, err := f.clientServices.ClientServices(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Documents, 1)

	require.NoError(t, f.clientServices.DeleteClientService(cs.ID))
	_, err = f.clientServices.Documents(cs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeetingUseCase(t *testing.T) {
	f := newFixture(t)
	alice := f.signUp(t, "alice@example.com")
	when := time.Date(2024, 10, 3, 14, 0, 0, 0, time.UTC)

	_, err := f.meetings.CreateMeeting(MeetingRequest{UserID: alice.ID, Title: "Point"})
	assert.ErrorIs(t, err, ErrInvalid, "a date is required")

	m, err := f.meetings.CreateMeeting(MeetingRequest{UserID: alice.ID, Title: "Point mensuel", MeetingDate: when})
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingPlanned, m.Status)

	_, err = f.meetings.UpdateMeeting(m.ID, MeetingUpdate{Status: strPtr("Reporté")})
	assert.ErrorIs(t, err, ErrInvalid)

	m, err = f.meetings.UpdateMeeting(m.ID, MeetingUpdate{Status: strPtr(entities.MeetingConfirmed), Location: strPtr("Visio")})
	require.NoError(t, err)
	assert.Equal(t, "Confirmé", m.Status)

	all, err := f.meetings.AllMeetings()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Client)
	assert.Equal(t, "alice@example.com", all[0].Client.Email)

	mine, err := f.meetings.ClientMeetings(alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, f.meetings.DeleteMeeting(m.ID))
	assert.ErrorIs(t, f.meetings.DeleteMeeting(m.ID), ErrNotFound)
}

func TestMessageUseCase(t *testing.T) {
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	profiles := repositories.NewProfilePgRepository(database)
	notifier := new(MockNotifier)
	uc := NewMessageUseCase(repositories.NewMessagePgRepository(database), profiles, notifier, nil)

	alice := &entities.Profile{Email: "alice@example.com"}
	admin := &entities.Profile{Email: "admin@1cgestion.fr", Role: entities.RoleAdmin}
	require.NoError(t, profiles.Create(alice))
	require.NoError(t, profiles.Create(admin))

	notifier.On("Notify", admin.ID, EventMessage, mock.AnythingOfType("*entities.Message")).Return(nil).Once()
	first, err := uc.SendMessage(alice.ID, MessageRequest{RecipientID: admin.ID, Content: "Bonjour"})
	require.NoError(t, err)

	notifier.On("Notify", alice.ID, EventMessage, mock.AnythingOfType("*entities.Message")).Return(assert.AnError).Once()
	reply, err := uc.SendMessage(admin.ID, MessageRequest{RecipientID: alice.ID, Content: "Bonjour Alice", ParentMessageID: &first.ID})
	require.NoError(t, err, "an offline recipient is not an error")
	notifier.AssertExpectations(t)

	_, err = uc.SendMessage(alice.ID, MessageRequest{RecipientID: alice.ID, Content: "moi"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = uc.SendMessage(alice.ID, MessageRequest{RecipientID: "ghost", Content: "?"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = uc.SendMessage(alice.ID, MessageRequest{RecipientID: admin.ID, Content: "?", ParentMessageID: strPtr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)

	conv, err := uc.Conversation(alice.ID, admin.ID)
	require.NoError(t, err)
	assert.Len(t, conv, 2)

	assert.ErrorIs(t, uc.MarkAsRead(reply.ID, admin.ID), ErrForbidden)
	require.NoError(t, uc.MarkAsRead(reply.ID, alice.ID))

	inbox, err := uc.UserMessages(alice.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}
