package services

import (
	"context"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/security"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/Rohan-debug788/SkillSwap/pkg/monitoring"
)

// Relationship states returned by GetStatus
const (
	StatusMatched         = "matched"
	StatusPendingSent     = "pending_sent"
	StatusPendingReceived = "pending_received"
	StatusNone            = "none"
)

const defaultMaxNoteLength = 500

type MatchService struct {
	store         Store
	notifier      *OfflineNotifier
	maxNoteLength int
}

func NewMatchService(store Store, maxNoteLength int) *MatchService {
	if maxNoteLength <= 0 {
		maxNoteLength = defaultMaxNoteLength
	}
	return &MatchService{
		store:         store,
		maxNoteLength: maxNoteLength,
	}
}

// SetNotifier attaches the offline notifier. A nil notifier disables notices.
func (s *MatchService) SetNotifier(n *OfflineNotifier) {
	s.notifier = n
}

// PotentialMatch is a discovery candidate with its skill names.
type PotentialMatch struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	UserName           string   `json:"userName"`
	UserProfilePicture string   `json:"userProfilePicture"`
	TeachSkills        []string `json:"teachSkills"`
	LearnSkills        []string `json:"learnSkills"`
}

// MatchSummary is a match as seen by one of its users.
type MatchSummary struct {
	ID                 string     `json:"id"`
	MatchDate          time.Time  `json:"matchDate"`
	UserID             string     `json:"userId"`
	UserName           string     `json:"userName"`
	UserProfilePicture string     `json:"userProfilePicture"`
	TeachSkills        []string   `json:"teachSkills"`
	LearnSkills        []string   `json:"learnSkills"`
	LastMessageDate    *time.Time `json:"lastMessageDate"`
}

// RequestSummary is a pending request annotated with the counterpart's profile.
type RequestSummary struct {
	ID                 string    `json:"id"`
	Message            string    `json:"message,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UserID             string    `json:"userId"`
	UserName           string    `json:"userName"`
	UserProfilePicture string    `json:"userProfilePicture"`
	TeachSkills        []string  `json:"teachSkills"`
	LearnSkills        []string  `json:"learnSkills"`
}

// RelationshipStatus is the answer to "where do I stand with this user".
type RelationshipStatus struct {
	Status          string `json:"status"`
	IsMatched       bool   `json:"isMatched"`
	IsPending       bool   `json:"isPending"`
	RequestSent     bool   `json:"requestSent"`
	RequestReceived bool   `json:"requestReceived"`
	MatchID         string `json:"matchId,omitempty"`
	RequestID       string `json:"requestId,omitempty"`
}

func notFoundOrUnauthorized() error {
	return errors.New(errors.ErrCodeNotFoundOrUnauthorized, "request not found or not authorized")
}

// hideNotFound conflates a missing record with a failed ownership check
func hideNotFound(err error) error {
	if errors.Is(err, errors.ErrCodeNotFound) {
		return notFoundOrUnauthorized()
	}
	return err
}

// DiscoverPotentialMatches returns users who teach a category userID wants to
// learn and also want to learn a category userID teaches, minus anyone already
// matched with or holding a pending request to or from userID.
func (s *MatchService) DiscoverPotentialMatches(ctx context.Context, userID string) ([]PotentialMatch, error) {
	teach, err := s.store.GetSkillsByUser(ctx, userID, models.SkillRoleTeach)
	if err != nil {
		return nil, err
	}
	learn, err := s.store.GetSkillsByUser(ctx, userID, models.SkillRoleLearn)
	if err != nil {
		return nil, err
	}
	if len(teach) == 0 || len(learn) == 0 {
		return []PotentialMatch{}, nil
	}

	teachers, err := s.store.ListUsersTeaching(ctx, categories(learn), userID)
	if err != nil {
		return nil, err
	}
	learners, err := s.store.ListUsersLearning(ctx, categories(teach), userID)
	if err != nil {
		return nil, err
	}

	candidates := intersect(teachers, learners)
	if len(candidates) == 0 {
		return []PotentialMatch{}, nil
	}

	excluded, err := s.connectedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if id == userID {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []PotentialMatch{}, nil
	}

	profiles, err := s.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]PotentialMatch, 0, len(ids))
	for _, id := range ids {
		user, ok := profiles[id]
		if !ok {
			continue
		}
		teachNames, learnNames, err := s.skillNames(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, PotentialMatch{
			ID:                 id,
			UserID:             id,
			UserName:           user.Name,
			UserProfilePicture: user.ProfilePicture,
			TeachSkills:        teachNames,
			LearnSkills:        learnNames,
		})
	}
	return result, nil
}

// CreateRequest opens a pending swap request from senderID to recipientID.
func (s *MatchService) CreateRequest(ctx context.Context, senderID, recipientID, message string) (*models.SwapRequest, error) {
	if recipientID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "recipient ID is required")
	}
	if senderID == recipientID {
		return nil, errors.New(errors.ErrCodeInvalidState, "cannot send a swap request to yourself")
	}

	if _, err := s.store.GetUser(ctx, recipientID); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeValidation, "recipient does not exist")
		}
		return nil, err
	}

	match, err := s.store.FindMatch(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if match != nil {
		return nil, errors.New(errors.ErrCodeInvalidState, "users are already matched")
	}

	pending, err := s.store.FindPendingBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, errors.New(errors.ErrCodeInvalidState, "a request already exists between these users")
	}

	req := &models.SwapRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     security.SanitizeText(message, s.maxNoteLength),
		Status:      models.SwapRequestStatusPending,
	}
	if err := s.store.CreateSwapRequest(ctx, req); err != nil {
		return nil, err
	}

	monitoring.SwapRequestTransitions.WithLabelValues("created").Inc()
	logger.Info("Swap request created", "request_id", req.ID, "sender_id", senderID, "recipient_id", recipientID)
	s.notifier.RequestReceived(ctx, senderID, recipientID)
	return req, nil
}

// Accept turns a pending request addressed to actorID into a Match.
func (s *MatchService) Accept(ctx context.Context, requestID, actorID string) (*models.Match, error) {
	req, err := s.store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return nil, hideNotFound(err)
	}
	if req.RecipientID != actorID || req.Status != models.SwapRequestStatusPending {
		return nil, notFoundOrUnauthorized()
	}

	match := &models.Match{
		User1ID:   req.SenderID,
		User2ID:   req.RecipientID,
		RequestID: req.ID,
	}
	if err := s.store.AcceptSwapRequest(ctx, req.ID, actorID, match); err != nil {
		return nil, hideNotFound(err)
	}

	monitoring.SwapRequestTransitions.WithLabelValues("accepted").Inc()
	logger.Info("Swap request accepted", "request_id", req.ID, "match_id", match.ID, "sender_id", req.SenderID, "recipient_id", actorID)
	s.notifier.RequestAccepted(ctx, actorID, req.SenderID)
	return match, nil
}

// Decline closes a pending request addressed to actorID without a Match.
func (s *MatchService) Decline(ctx context.Context, requestID, actorID string) (*models.SwapRequest, error) {
	req, err := s.store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return nil, hideNotFound(err)
	}
	if req.RecipientID != actorID || req.Status != models.SwapRequestStatusPending {
		return nil, notFoundOrUnauthorized()
	}

	err = s.store.UpdateSwapRequestStatus(ctx, req.ID, models.SwapRequestStatusPending, models.SwapRequestStatusDeclined)
	if err != nil {
		return nil, hideNotFound(err)
	}
	req.Status = models.SwapRequestStatusDeclined

	monitoring.SwapRequestTransitions.WithLabelValues("declined").Inc()
	logger.Info("Swap request declined", "request_id", req.ID, "recipient_id", actorID)
	return req, nil
}

// Cancel deletes a pending request sent by actorID.
func (s *MatchService) Cancel(ctx context.Context, requestID, actorID string) error {
	req, err := s.store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return hideNotFound(err)
	}
	if req.SenderID != actorID || req.Status != models.SwapRequestStatusPending {
		return notFoundOrUnauthorized()
	}

	if err := s.store.DeleteSwapRequest(ctx, req.ID, actorID); err != nil {
		return hideNotFound(err)
	}

	monitoring.SwapRequestTransitions.WithLabelValues("cancelled").Inc()
	logger.Info("Swap request cancelled", "request_id", req.ID, "sender_id", actorID)
	return nil
}

// GetStatus checks match, then sent-pending, then received-pending.
func (s *MatchService) GetStatus(ctx context.Context, currentUserID, otherUserID string) (*RelationshipStatus, error) {
	if otherUserID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "user ID is required")
	}

	match, err := s.store.FindMatch(ctx, currentUserID, otherUserID)
	if err != nil {
		return nil, err
	}
	if match != nil {
		return &RelationshipStatus{Status: StatusMatched, IsMatched: true, MatchID: match.ID}, nil
	}

	sent, err := s.store.FindPendingFrom(ctx, currentUserID, otherUserID)
	if err != nil {
		return nil, err
	}
	if sent != nil {
		return &RelationshipStatus{Status: StatusPendingSent, IsPending: true, RequestSent: true, RequestID: sent.ID}, nil
	}

	received, err := s.store.FindPendingFrom(ctx, otherUserID, currentUserID)
	if err != nil {
		return nil, err
	}
	if received != nil {
		return &RelationshipStatus{Status: StatusPendingReceived, IsPending: true, RequestReceived: true, RequestID: received.ID}, nil
	}

	return &RelationshipStatus{Status: StatusNone}, nil
}

// ListMatches returns userID's matches newest first with partner details.
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]MatchSummary, error) {
	matches, err := s.store.ListMatchesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		partnerIDs = append(partnerIDs, m.Partner(userID))
	}
	profiles, err := s.profiles(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		partnerID := m.Partner(userID)
		teachNames, learnNames, err := s.skillNames(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		last, err := s.store.LastMessageAt(ctx, userID, partnerID)
		if err != nil {
			return nil, err
		}
		partner := profiles[partnerID]
		result = append(result, MatchSummary{
			ID:                 m.ID,
			MatchDate:          m.CreatedAt,
			UserID:             partnerID,
			UserName:           partner.Name,
			UserProfilePicture: partner.ProfilePicture,
			TeachSkills:        teachNames,
			LearnSkills:        learnNames,
			LastMessageDate:    last,
		})
	}
	return result, nil
}

// ListIncomingRequests returns pending requests addressed to userID.
func (s *MatchService) ListIncomingRequests(ctx context.Context, userID string) ([]RequestSummary, error) {
	requests, err := s.store.ListPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, userID, requests)
}

// ListOutgoingRequests returns pending requests sent by userID.
func (s *MatchService) ListOutgoingRequests(ctx context.Context, userID string) ([]RequestSummary, error) {
	requests, err := s.store.ListPendingOutgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, userID, requests)
}

// RelatedUsers returns everyone matched with userID or sharing a pending request with them.
func (s *MatchService) RelatedUsers(ctx context.Context, userID string) ([]string, error) {
	related, err := s.connectedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(related))
	for id := range related {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MatchService) summarize(ctx context.Context, userID string, requests []models.SwapRequest) ([]RequestSummary, error) {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.Counterpart(userID))
	}
	profiles, err := s.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]RequestSummary, 0, len(requests))
	for _, r := range requests {
		other := r.Counterpart(userID)
		teachNames, learnNames, err := s.skillNames(ctx, other)
		if err != nil {
			return nil, err
		}
		result = append(result, RequestSummary{
			ID:                 r.ID,
			Message:            r.Message,
			CreatedAt:          r.CreatedAt,
			UserID:             other,
			UserName:           profiles[other].Name,
			UserProfilePicture: profiles[other].ProfilePicture,
			TeachSkills:        teachNames,
			LearnSkills:        learnNames,
		})
	}
	return result, nil
}

// connectedUsers is the exclusion set: match partners plus pending counterparts.
func (s *MatchService) connectedUsers(ctx context.Context, userID string) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	matches, err := s.store.ListMatchesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		set[m.Partner(userID)] = struct{}{}
	}

	incoming, err := s.store.ListPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.store.ListPendingOutgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range append(incoming, outgoing...) {
		set[r.Counterpart(userID)] = struct{}{}
	}
	return set, nil
}

func (s *MatchService) profiles(ctx context.Context, ids []string) (map[string]models.User, error) {
	users, err := s.store.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *MatchService) skillNames(ctx context.Context, userID string) ([]string, []string, error) {
	teach, err := s.store.GetSkillsByUser(ctx, userID, models.SkillRoleTeach)
	if err != nil {
		return nil, nil, err
	}
	learn, err := s.store.GetSkillsByUser(ctx, userID, models.SkillRoleLearn)
	if err != nil {
		return nil, nil, err
	}
	return names(teach), names(learn), nil
}

func categories(skills []models.Skill) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if _, ok := seen[sk.Category]; ok {
			continue
		}
		seen[sk.Category] = struct{}{}
		out = append(out, sk.Category)
	}
	return out
}

func names(skills []models.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		out = append(out, sk.Name)
	}
	return out
}

// intersect keeps the order of a
func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := inB[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
