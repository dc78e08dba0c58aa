package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/devtrio/wanderswipe/internal/cache"
	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Cache keys, one per state slice so a failing write never blocks the rest.
const (
	keyDestinations     = "travel_destinations"
	keyLiked            = "travel_liked"
	keySaved            = "travel_saved"
	keyLastGeneration   = "travel_last_generation"
	keySwipeCount       = "travel_swipe_count"
	keyActiveFilters    = "travel_active_filters"
	keyCustomProfiles   = "travel_custom_profiles"
	keyCurrentProfileID = "travel_current_profile_id"
	keyMatchedUsers     = "travel_matched_users"
	keyAcceptedUserIDs  = "travel_accepted_user_ids"
	keyRejectedUserIDs  = "travel_rejected_user_ids"
)

var cacheKeys = []string{
	keyDestinations, keyLiked, keySaved, keyLastGeneration, keySwipeCount,
	keyActiveFilters, keyCustomProfiles, keyCurrentProfileID, keyMatchedUsers,
	keyAcceptedUserIDs, keyRejectedUserIDs,
}

const (
	defaultCooldown  = 15 * time.Second
	defaultBatchSize = 8

	// A match candidate surfaces every this many swipes.
	matchInterval = 10
)

var (
	ErrCooldownActive       = errors.New("Please wait 15 seconds between generations to avoid rate limits.")
	ErrGenerationInProgress = errors.New("a generation is already in progress")
	ErrNoNewDestinations    = errors.New("AI generated no new unique destinations for the current filters.")
	ErrProfileNotFound      = errors.New("profile not found")
)

const recommendationFallback = "Based on your preferences, I recommend exploring more cultural sites and trying local food experiences!"

// Generator is the AI backend producing destination candidates and
// recommendation text.
type Generator interface {
	GenerateDestinations(ctx context.Context, req model.GenerationRequest, count int) ([]model.GeneratedDestination, error)
	GenerateRecommendations(ctx context.Context, likedDestinations, categories []string) (string, error)
}

// PhotoFinder resolves a photo reference for a place; empty result or error
// both degrade to the placeholder image.
type PhotoFinder interface {
	FindPhotoReference(ctx context.Context, placeName, city string) (string, error)
}

// Notifier receives store events for pushing to connected UI clients.
type Notifier interface {
	GenerationCompleted(count int)
	MatchFound(profile model.UserProfile)
}

// Store owns the authoritative session state: destinations, liked/saved
// sets, filters, profiles and match bookkeeping. All access goes through one
// instance; every relevant mutation writes its slice back to the cache.
type Store struct {
	Cooldown  time.Duration
	BatchSize int

	cache     cache.Store
	generator Generator
	photos    PhotoFinder
	notifier  Notifier

	mu               sync.Mutex
	destinations     []model.Destination
	liked            []model.Destination
	saved            []model.Destination
	swiped           map[int]bool
	swipeCount       int
	filters          model.ActiveFilters
	profiles         []model.UserProfile
	currentProfileID string
	matchedUsers     []model.UserProfile
	acceptedUserIDs  map[string]bool
	rejectedUserIDs  map[string]bool
	generating       bool
	generationError  string
}

func New(cacheStore cache.Store, generator Generator, photos PhotoFinder) *Store {
	return &Store{
		Cooldown:        defaultCooldown,
		BatchSize:       defaultBatchSize,
		cache:           cacheStore,
		generator:       generator,
		photos:          photos,
		swiped:          make(map[int]bool),
		filters:         model.DefaultFilters(),
		acceptedUserIDs: make(map[string]bool),
		rejectedUserIDs: make(map[string]bool),
	}
}

func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

// --- Persistence helpers ---

// persist writes one slice to its cache key. Write failures are logged and
// otherwise ignored; the cache is best-effort.
func (s *Store) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshalling %s for cache: %v", key, err)
		return
	}
	if err := s.cache.Set(key, data); err != nil {
		log.Printf("Error saving %s to cache: %v", key, err)
	}
}

// hydrate reads one slice; a missing key or corrupt payload leaves the
// target untouched and reports false.
func (s *Store) hydrate(key string, target any) bool {
	data, err := s.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Printf("Error loading %s from cache: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		log.Printf("Error decoding %s from cache: %v", key, err)
		return false
	}
	return true
}

// Load hydrates all state from the cache, or populates the initial
// destination set from seed metadata plus photo enrichment on first run.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrate(keyDestinations, &s.destinations) {
		log.Println("No cached destinations found. Fetching initial destinations with images.")
		seeds := SeedDestinations()
		for i := range seeds {
			seeds[i].Image = s.photoURL(ctx, seeds[i].Name, seeds[i].Location.City)
		}
		s.destinations = seeds
		s.persist(keyDestinations, s.destinations)
	}

	s.hydrate(keyLiked, &s.liked)
	s.hydrate(keySaved, &s.saved)
	s.hydrate(keySwipeCount, &s.swipeCount)

	if !s.hydrate(keyCustomProfiles, &s.profiles) || len(s.profiles) == 0 {
		s.profiles = SeedProfiles()
	}
	if !s.hydrate(keyCurrentProfileID, &s.currentProfileID) || s.currentProfileID == "" {
		s.currentProfileID = s.profiles[0].ID
	}

	var filters model.ActiveFilters
	if s.hydrate(keyActiveFilters, &filters) {
		s.filters = normalizeFilters(filters)
	}

	s.hydrate(keyMatchedUsers, &s.matchedUsers)

	var accepted, rejected []string
	if s.hydrate(keyAcceptedUserIDs, &accepted) {
		for _, id := range accepted {
			s.acceptedUserIDs[id] = true
		}
	}
	if s.hydrate(keyRejectedUserIDs, &rejected) {
		for _, id := range rejected {
			s.rejectedUserIDs[id] = true
		}
	}
}

// photoURL resolves a destination image through the photo lookup, mapping
// every failure to the placeholder.
func (s *Store) photoURL(ctx context.Context, name, city string) string {
	if s.photos == nil {
		return PlaceholderImage
	}
	ref, err := s.photos.FindPhotoReference(ctx, name, city)
	if err != nil {
		log.Printf("Photo lookup failed for %q: %v", name, err)
		return PlaceholderImage
	}
	if ref == "" {
		return PlaceholderImage
	}
	return fmt.Sprintf("/images/proxy?photoReference=%s&maxWidth=4000", url.QueryEscape(ref))
}

// --- Generation ---

// canGenerate checks the persisted last-generation marker against the
// cooldown. This gate is coarser than the client's request pacing and holds
// independently of it.
func (s *Store) canGenerate() bool {
	data, err := s.cache.Get(keyLastGeneration)
	if err != nil {
		return true
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true
	}
	return time.Since(time.UnixMilli(millis)) > s.Cooldown
}

// userFacingGenerationError maps client failures onto the strings shown in
// the UI.
func userFacingGenerationError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Invalid API key"):
		return "Invalid API key. Please check your Mistral AI API key in the environment variables."
	case strings.Contains(msg, "Rate limit"):
		return "Rate limit exceeded. Please wait a few minutes before generating more destinations."
	default:
		return "Failed to generate destinations. Please try again."
	}
}

// GenerateNewDestinations asks the AI for a new batch constrained by the
// given filters (or the active ones), enriches it with photos and merges it
// into the destination list. The returned slice holds only the newly added
// destinations.
func (s *Store) GenerateNewDestinations(ctx context.Context, override *model.ActiveFilters) ([]model.Destination, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	if !s.canGenerate() {
		s.generationError = ErrCooldownActive.Error()
		s.mu.Unlock()
		return nil, ErrCooldownActive
	}
	s.generating = true
	s.generationError = ""
	filters := s.filters
	if override != nil {
		filters = *override
	}
	existingNames := make([]string, len(s.destinations))
	for i, d := range s.destinations {
		existingNames[i] = d.Name
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	locations := filters.Locations
	if len(locations) == 0 {
		locations = allIndianCities
	}
	categories := filters.PlaceTypes
	if len(categories) == 0 {
		categories = defaultGenerationCategories
	}

	generated, err := s.generator.GenerateDestinations(ctx, model.GenerationRequest{
		Locations:     locations,
		Categories:    categories,
		ExistingNames: existingNames,
	}, s.BatchSize)
	if err != nil {
		msg := userFacingGenerationError(err)
		log.Printf("Error generating destinations: %v", err)
		s.mu.Lock()
		s.generationError = msg
		s.mu.Unlock()
		return nil, err
	}

	// Hard dedup against all existing names; the prompt-side exclusion list
	// is advisory only.
	fresh := generated[:0]
	for _, g := range generated {
		if !util.ContainsFold(existingNames, g.Name) {
			fresh = append(fresh, g)
		}
	}

	images := make([]string, len(fresh))
	for i, g := range fresh {
		images[i] = s.photoURL(ctx, g.Name, g.Location.City)
	}

	s.mu.Lock()
	usedIDs := make(map[int]bool, len(s.destinations))
	for _, d := range s.destinations {
		usedIDs[d.ID] = true
	}

	added := make([]model.Destination, 0, len(fresh))
	for i, g := range fresh {
		added = append(added, model.Destination{
			ID:          uniqueDestinationID(i, usedIDs),
			Name:        g.Name,
			Description: g.Description,
			Tags:        g.Tags,
			Location:    g.Location,
			Rating:      util.RandomRating(),
			Image:       images[i],
		})
	}

	if len(added) == 0 {
		s.generationError = ErrNoNewDestinations.Error()
		s.mu.Unlock()
		return nil, ErrNoNewDestinations
	}

	s.destinations = append(s.destinations, added...)
	s.persist(keyDestinations, s.destinations)
	if err := s.cache.Set(keyLastGeneration, []byte(strconv.FormatInt(time.Now().UnixMilli(), 10))); err != nil {
		log.Printf("Error saving %s to cache: %v", keyLastGeneration, err)
	}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.GenerationCompleted(len(added))
	}
	return added, nil
}

// uniqueDestinationID re-rolls the random offset ID until it misses every
// existing destination ID, seed or AI batch alike.
func uniqueDestinationID(index int, used map[int]bool) int {
	for {
		id := util.GeneratedDestinationID(index)
		if !used[id] {
			used[id] = true
			return id
		}
	}
}

// GenerationError returns the last user-facing generation failure, if any.
func (s *Store) GenerationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generationError
}

// GetPersonalizedRecommendations returns AI travel advice seeded from liked
// and saved destinations, or a canned fallback on any failure.
func (s *Store) GetPersonalizedRecommendations(ctx context.Context) string {
	s.mu.Lock()
	likedNames := make([]string, len(s.liked))
	for i, d := range s.liked {
		likedNames[i] = d.Name
	}
	seen := make(map[string]bool)
	var tags []string
	for _, d := range append(append([]model.Destination{}, s.liked...), s.saved...) {
		for _, tag := range d.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	s.mu.Unlock()

	recommendations, err := s.generator.GenerateRecommendations(ctx, likedNames, tags)
	if err != nil {
		log.Printf("Error getting recommendations: %v", err)
		return recommendationFallback
	}
	return recommendations
}

// --- Swiping ---

func (s *Store) LikeDestination(dest model.Destination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.swiped[dest.ID] = true
	for _, d := range s.liked {
		if d.ID == dest.ID {
			return
		}
	}
	s.liked = append(s.liked, dest)
	s.persist(keyLiked, s.liked)
}

func (s *Store) SaveDestination(dest model.Destination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.swiped[dest.ID] = true
	for _, d := range s.saved {
		if d.ID == dest.ID {
			return
		}
	}
	s.saved = append(s.saved, dest)
	s.persist(keySaved, s.saved)
}

// DislikeDestination removes the destination from liked if present; the
// card is only marked as processed for this session.
func (s *Store) DislikeDestination(dest model.Destination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.swiped[dest.ID] = true
	filtered := s.liked[:0]
	for _, d := range s.liked {
		if d.ID != dest.ID {
			filtered = append(filtered, d)
		}
	}
	s.liked = filtered
	s.persist(keyLiked, s.liked)
}

// IncrementSwipeCount bumps the counter and, every tenth swipe, surfaces a
// match candidate from the profile pool.
func (s *Store) IncrementSwipeCount() *model.UserProfile {
	s.mu.Lock()
	s.swipeCount++
	s.persist(keySwipeCount, s.swipeCount)

	var match *model.UserProfile
	if s.swipeCount%matchInterval == 0 {
		candidates := make([]model.UserProfile, 0, len(s.profiles))
		for _, p := range s.profiles {
			if p.ID != s.currentProfileID {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) > 0 {
			picked := candidates[rand.Intn(len(candidates))]
			match = &picked

			already := false
			for _, m := range s.matchedUsers {
				if m.ID == picked.ID {
					already = true
					break
				}
			}
			if !already {
				s.matchedUsers = append(s.matchedUsers, picked)
				s.persist(keyMatchedUsers, s.matchedUsers)
			}
		}
	}
	s.mu.Unlock()

	if match != nil && s.notifier != nil {
		s.notifier.MatchFound(*match)
	}
	return match
}

// --- Queries ---

// Destinations returns every destination, seed and generated.
func (s *Store) Destinations() []model.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Destination(nil), s.destinations...)
}

// VisibleDestinations filters the full list down to swipeable cards: not
// yet processed, matching the active city filter exactly and intersecting
// the active place-type filter.
func (s *Store) VisibleDestinations() []model.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]model.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		if s.swiped[d.ID] {
			continue
		}
		if len(s.filters.Locations) > 0 && !util.ContainsFold(s.filters.Locations, d.Location.City) {
			continue
		}
		if len(s.filters.PlaceTypes) > 0 && !util.IntersectsFold(d.Tags, s.filters.PlaceTypes) {
			continue
		}
		visible = append(visible, d)
	}
	return visible
}

// DestinationByID looks a destination up in the full list.
func (s *Store) DestinationByID(id int) (model.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.destinations {
		if d.ID == id {
			return d, true
		}
	}
	return model.Destination{}, false
}

func (s *Store) LikedDestinations() []model.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Destination(nil), s.liked...)
}

func (s *Store) SavedDestinations() []model.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Destination(nil), s.saved...)
}

func (s *Store) SwipeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swipeCount
}

func (s *Store) ActiveFilters() model.ActiveFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) SetActiveFilters(filters model.ActiveFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = normalizeFilters(filters)
	s.persist(keyActiveFilters, s.filters)
}

// normalizeFilters backfills nil slices and the distance default so a
// partially persisted filter object never breaks querying.
func normalizeFilters(f model.ActiveFilters) model.ActiveFilters {
	if f.Locations == nil {
		f.Locations = []string{}
	}
	if f.Genders == nil {
		f.Genders = []string{}
	}
	if f.Races == nil {
		f.Races = []string{}
	}
	if f.Religions == nil {
		f.Religions = []string{}
	}
	if f.PlaceTypes == nil {
		f.PlaceTypes = []string{}
	}
	if f.MaxDistance == 0 {
		f.MaxDistance = 50
	}
	return f
}

// --- Profiles ---

func (s *Store) Profiles() []model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.UserProfile(nil), s.profiles...)
}

// CurrentProfile returns the active profile, falling back to the first seed
// profile when the selection is stale.
func (s *Store) CurrentProfile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == s.currentProfileID {
			return p
		}
	}
	return seedProfiles[0]
}

// AddOrUpdateProfile upserts a profile, assigning a fresh ID when absent.
func (s *Store) AddOrUpdateProfile(profile model.UserProfile) model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	updated := false
	for i, p := range s.profiles {
		if p.ID == profile.ID {
			s.profiles[i] = profile
			updated = true
			break
		}
	}
	if !updated {
		s.profiles = append(s.profiles, profile)
	}
	s.persist(keyCustomProfiles, s.profiles)
	return profile
}

func (s *Store) SelectProfile(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.ID == profileID {
			s.currentProfileID = profileID
			s.persist(keyCurrentProfileID, s.currentProfileID)
			return nil
		}
	}
	return ErrProfileNotFound
}

// DeleteProfile removes a profile; when the active one goes, selection
// falls back to the first remaining or the first seed profile.
func (s *Store) DeleteProfile(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.profiles[:0]
	for _, p := range s.profiles {
		if p.ID != profileID {
			filtered = append(filtered, p)
		}
	}
	s.profiles = filtered

	if s.currentProfileID == profileID {
		if len(s.profiles) > 0 {
			s.currentProfileID = s.profiles[0].ID
		} else {
			s.currentProfileID = seedProfiles[0].ID
		}
		s.persist(keyCurrentProfileID, s.currentProfileID)
	}
	s.persist(keyCustomProfiles, s.profiles)
}

// --- Match bookkeeping ---

func (s *Store) MatchedUsers() []model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.UserProfile(nil), s.matchedUsers...)
}

func (s *Store) AcceptUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acceptedUserIDs[userID] = true
	delete(s.rejectedUserIDs, userID)
	s.persist(keyAcceptedUserIDs, sortedKeys(s.acceptedUserIDs))
	s.persist(keyRejectedUserIDs, sortedKeys(s.rejectedUserIDs))
}

func (s *Store) RejectUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejectedUserIDs[userID] = true
	delete(s.acceptedUserIDs, userID)
	s.persist(keyAcceptedUserIDs, sortedKeys(s.acceptedUserIDs))
	s.persist(keyRejectedUserIDs, sortedKeys(s.rejectedUserIDs))
}

func (s *Store) AcceptedUserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.acceptedUserIDs)
}

func (s *Store) RejectedUserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.rejectedUserIDs)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Reset ---

// ClearCache removes every persisted key and resets the session to its
// initial state. Destinations stay empty until the next Load.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range cacheKeys {
		if err := s.cache.Delete(key); err != nil {
			log.Printf("Error removing cache key %s: %v", key, err)
		}
	}

	s.destinations = nil
	s.liked = nil
	s.saved = nil
	s.swiped = make(map[int]bool)
	s.swipeCount = 0
	s.profiles = SeedProfiles()
	s.currentProfileID = s.profiles[0].ID
	s.filters = model.DefaultFilters()
	s.matchedUsers = nil
	s.acceptedUserIDs = make(map[string]bool)
	s.rejectedUserIDs = make(map[string]bool)
	s.generationError = ""
}
