package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/chatstore"
	"github.com/quocanhngo/travelmate/pkg/notification"
	"go.uber.org/zap"
)

// ---------- users ----------

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	rows   []*model.User
	// beforeCreate runs inside Create before uniqueness is checked.
	beforeCreate func()
}

func (f *fakeUsers) add(uid, email string) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &model.User{ID: f.nextID, FirebaseUID: uid, Email: email, CreatedAt: time.Now()}
	f.rows = append(f.rows, u)
	cp := *u
	return &cp
}

func (f *fakeUsers) FindByFirebaseUID(_ context.Context, uid string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.FirebaseUID == user.FirebaseUID || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// ---------- profiles ----------

type fakeProfiles struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*model.UserProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: map[string]*model.UserProfile{}}
}

func (f *fakeProfiles) FindByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) FindByEmails(_ context.Context, emails []string) (map[string]*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]*model.UserProfile{}
	for _, e := range emails {
		if p, ok := f.rows[e]; ok {
			cp := *p
			out[e] = &cp
		}
	}
	return out, nil
}

func (f *fakeProfiles) nicknameOwner(nick string) string {
	for email, p := range f.rows {
		if p.Nickname == nick {
			return email
		}
	}
	return ""
}

func (f *fakeProfiles) Create(_ context.Context, p *model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.UserID]; ok {
		return repository.ErrDuplicate
	}
	if f.nicknameOwner(p.Nickname) != "" {
		return repository.ErrDuplicate
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.rows[p.UserID] = &cp
	return nil
}

func (f *fakeProfiles) Save(_ context.Context, p *model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if owner := f.nicknameOwner(p.Nickname); owner != "" && owner != p.UserID {
		return repository.ErrDuplicate
	}
	cp := *p
	f.rows[p.UserID] = &cp
	return nil
}

func (f *fakeProfiles) NicknameTaken(_ context.Context, nickname, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner := f.nicknameOwner(nickname)
	return owner != "" && owner != email, nil
}

// ---------- posts ----------

type fakePosts struct {
	mu         sync.Mutex
	nextID     uint
	rows       map[uint]*model.Post
	categories []model.PostCategory
}

func newFakePosts() *fakePosts {
	return &fakePosts{rows: map[uint]*model.Post{}}
}

func (f *fakePosts) add(author string) *model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &model.Post{ID: f.nextID, AuthorID: author, Title: "t", Content: "c", CreatedAt: time.Now()}
	f.rows[p.ID] = p
	cp := *p
	return &cp
}

func (f *fakePosts) List(_ context.Context, flt repository.PostFilter) ([]model.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Post
	for _, p := range f.rows {
		if flt.CategoryID != nil && p.CategoryID != *flt.CategoryID {
			continue
		}
		if flt.Search != "" && !strings.Contains(p.Title+p.Content, flt.Search) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if flt.Offset < len(all) {
		all = all[flt.Offset:]
	} else {
		all = nil
	}
	if len(all) > flt.Limit {
		all = all[:flt.Limit]
	}
	return all, total, nil
}

func (f *fakePosts) FindByID(_ context.Context, id uint) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := f.FindByID(ctx, id)
	return err == nil, nil
}

func (f *fakePosts) AuthorOf(ctx context.Context, id uint) (string, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.AuthorID, nil
}

func (f *fakePosts) Create(_ context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	post.ID = f.nextID
	cp := *post
	f.rows[post.ID] = &cp
	return nil
}

func (f *fakePosts) Save(_ context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *post
	f.rows[post.ID] = &cp
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakePosts) FindCategoryByName(_ context.Context, name string) (*model.PostCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].Name == name {
			cp := f.categories[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePosts) EnsureCategories(_ context.Context, cats []model.PostCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cats {
		found := false
		for _, existing := range f.categories {
			if existing.Name == c.Name {
				found = true
				break
			}
		}
		if !found {
			c.ID = uint(len(f.categories) + 1)
			f.categories = append(f.categories, c)
		}
	}
	return nil
}

// ---------- itineraries ----------

type fakeItineraries struct {
	mu        sync.Mutex
	nextID    uint
	nextDayID uint
	nextActID uint
	rows      map[uint]*model.Itinerary
	// failDays makes the next day insert fail, to exercise rollback.
	failDays error
}

func newFakeItineraries() *fakeItineraries {
	return &fakeItineraries{rows: map[uint]*model.Itinerary{}}
}

func cloneItinerary(it *model.Itinerary) *model.Itinerary {
	cp := *it
	cp.Days = make([]model.ItineraryDay, len(it.Days))
	for i, d := range it.Days {
		cp.Days[i] = d
		cp.Days[i].Activities = append([]model.ItineraryActivity(nil), d.Activities...)
	}
	return &cp
}

func (f *fakeItineraries) List(_ context.Context, flt repository.ItineraryFilter) ([]model.Itinerary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Itinerary
	for _, it := range f.rows {
		all = append(all, *cloneItinerary(it))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, int64(len(all)), nil
}

func (f *fakeItineraries) FindByID(_ context.Context, id uint) (*model.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneItinerary(it), nil
}

func (f *fakeItineraries) FindHeader(ctx context.Context, id uint) (*model.Itinerary, error) {
	it, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Days = nil
	return it, nil
}

func (f *fakeItineraries) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := f.FindByID(ctx, id)
	return err == nil, nil
}

func (f *fakeItineraries) AuthorOf(ctx context.Context, id uint) (string, error) {
	it, err := f.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return it.AuthorID, nil
}

func (f *fakeItineraries) assignDayIDs(itID uint, days []model.ItineraryDay) error {
	if f.failDays != nil {
		err := f.failDays
		f.failDays = nil
		return err
	}
	for i := range days {
		f.nextDayID++
		days[i].ID = f.nextDayID
		days[i].ItineraryID = itID
		for j := range days[i].Activities {
			f.nextActID++
			days[i].Activities[j].ID = f.nextActID
			days[i].Activities[j].ItineraryDayID = days[i].ID
		}
	}
	return nil
}

func (f *fakeItineraries) Create(_ context.Context, it *model.Itinerary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if err := f.assignDayIDs(f.nextID, it.Days); err != nil {
		f.nextID--
		return err
	}
	it.ID = f.nextID
	f.rows[it.ID] = cloneItinerary(it)
	return nil
}

func (f *fakeItineraries) Update(_ context.Context, it *model.Itinerary, days *[]model.ItineraryDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.rows[it.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneItinerary(it)
	next.Days = stored.Days
	if days != nil {
		replaced := append([]model.ItineraryDay(nil), (*days)...)
		if err := f.assignDayIDs(it.ID, replaced); err != nil {
			return err
		}
		next.Days = replaced
	}
	f.rows[it.ID] = next
	return nil
}

func (f *fakeItineraries) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

// ---------- comments ----------

type fakeComments struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: map[uint]*model.Comment{}}
}

func (f *fakeComments) ListTopLevel(_ context.Context, t model.ContentTarget) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Comment
	for _, c := range f.rows {
		if c.ParentCommentID == nil && c.Target() == t {
			cp := *c
			for _, r := range f.rows {
				if r.ParentCommentID != nil && *r.ParentCommentID == c.ID {
					cp.Replies = append(cp.Replies, *r)
				}
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeComments) FindByID(_ context.Context, id uint) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := f.FindByID(ctx, id)
	return err == nil, nil
}

func (f *fakeComments) Create(_ context.Context, c *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeComments) UpdateContent(_ context.Context, c *model.Comment, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID].Content = content
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	for rid, r := range f.rows {
		if r.ParentCommentID != nil && *r.ParentCommentID == id {
			delete(f.rows, rid)
		}
	}
	return nil
}

// ---------- interactions ----------

type fakeInteractions struct {
	mu     sync.Mutex
	nextID uint
	rows   map[model.InteractionKind][]*model.InteractionFact
}

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{rows: map[model.InteractionKind][]*model.InteractionFact{}}
}

func (f *fakeInteractions) Find(_ context.Context, kind model.InteractionKind, userID uint, t model.ContentTarget) (*model.InteractionFact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows[kind] {
		if r.UserID == userID && r.Target() == t {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInteractions) Create(_ context.Context, kind model.InteractionKind, fact *model.InteractionFact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows[kind] {
		if r.UserID == fact.UserID && r.Target() == fact.Target() {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	fact.ID = f.nextID
	cp := *fact
	f.rows[kind] = append(f.rows[kind], &cp)
	return nil
}

func (f *fakeInteractions) Delete(_ context.Context, kind model.InteractionKind, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.rows[kind][:0]
	for _, r := range f.rows[kind] {
		if r.ID != id {
			rows = append(rows, r)
		}
	}
	f.rows[kind] = rows
	return nil
}

func (f *fakeInteractions) Count(_ context.Context, kind model.InteractionKind, t model.ContentTarget) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows[kind] {
		if r.Target() == t {
			n++
		}
	}
	return n, nil
}

// ---------- chat rooms ----------

type fakeRooms struct {
	mu           sync.Mutex
	nextID       uint
	rows         []*model.ChatRoom
	beforeCreate func()
}

// insertRaw stores a room as given, bypassing canonical ordering.
func (f *fakeRooms) insertRaw(room model.ChatRoom) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	room.ID = f.nextID
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, &room)
}

func (f *fakeRooms) FindByPair(_ context.Context, p model.Pair) (*model.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if (r.User1ID == p.User1 && r.User2ID == p.User2) || (r.User1ID == p.User2 && r.User2ID == p.User1) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRooms) Create(_ context.Context, room *model.ChatRoom) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	want := model.NewPair(room.User1ID, room.User2ID)
	for _, r := range f.rows {
		if model.NewPair(r.User1ID, r.User2ID) == want || r.FirestoreChatID == room.FirestoreChatID {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	room.ID = f.nextID
	room.CreatedAt = time.Now()
	cp := *room
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeRooms) ListForUser(_ context.Context, email string) ([]model.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ChatRoom
	for _, r := range f.rows {
		if r.User1ID == email || r.User2ID == email {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity().After(out[j].LastActivity()) })
	return out, nil
}

func (f *fakeRooms) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// ---------- reports ----------

type fakeReports struct {
	mu   sync.Mutex
	rows []*model.Report
	// skipExistsCheck makes ExistsFor miss, as a concurrent writer would.
	skipExistsCheck bool
}

func (f *fakeReports) ExistsFor(_ context.Context, reporter string, t model.Target) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipExistsCheck {
		return false, nil
	}
	for _, r := range f.rows {
		if r.ReporterUserID == reporter && r.Target() == t {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReports) Create(_ context.Context, report *model.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ReporterUserID == report.ReporterUserID && r.Target() == report.Target() {
			return repository.ErrDuplicate
		}
	}
	report.ID = uint(len(f.rows) + 1)
	cp := *report
	f.rows = append(f.rows, &cp)
	return nil
}

// ---------- fcm tokens ----------

type fakeTokens struct {
	mu     sync.Mutex
	nextID uint
	rows   []*model.FcmToken
}

func (f *fakeTokens) Upsert(_ context.Context, token *model.FcmToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == token.UserID && r.Token == token.Token {
			r.DeviceType = token.DeviceType
			*token = *r
			return nil
		}
	}
	f.nextID++
	token.ID = f.nextID
	cp := *token
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeTokens) Delete(_ context.Context, email, token string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	rows := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID == email && r.Token == token {
			n++
			continue
		}
		rows = append(rows, r)
	}
	f.rows = rows
	return n, nil
}

// ---------- messages ----------

type fakeMessages struct {
	mu   sync.Mutex
	rows []model.PrivateMessage
}

func (f *fakeMessages) Create(_ context.Context, msg *model.PrivateMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *msg)
	return nil
}

// ---------- collaborators ----------

type sentNotification struct {
	Recipient string
	Message   notification.Message
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Notify(_ context.Context, recipient string, msg notification.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{Recipient: recipient, Message: msg})
}

type fakeBootstrapper struct {
	mu    sync.Mutex
	rooms []chatstore.Room
	err   error
}

func (f *fakeBootstrapper) EnsureRoom(_ context.Context, room chatstore.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, room)
	return f.err
}

type fakeRevoker struct {
	token     string
	expiresAt time.Time
}

func (f *fakeRevoker) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	f.token, f.expiresAt = token, expiresAt
	return nil
}

// ---------- environment ----------

type testEnv struct {
	users        *fakeUsers
	profiles     *fakeProfiles
	posts        *fakePosts
	itineraries  *fakeItineraries
	comments     *fakeComments
	interactions *fakeInteractions
	rooms        *fakeRooms
	reports      *fakeReports
	tokens       *fakeTokens
	messages     *fakeMessages
	notifier     *fakeNotifier
	bootstrap    *fakeBootstrapper
	revoker      *fakeRevoker

	identity    *IdentityService
	targets     *TargetResolver
	chat        *ChatService
	interaction *InteractionService
	report      *ReportService
	comment     *CommentService
	itinerary   *ItineraryService
	post        *PostService
	profile     *ProfileService
	fcm         *FcmTokenService
	message     *MessageService
	auth        *AuthService
}

func newTestEnv() *testEnv {
	e := &testEnv{
		users:        &fakeUsers{},
		profiles:     newFakeProfiles(),
		posts:        newFakePosts(),
		itineraries:  newFakeItineraries(),
		comments:     newFakeComments(),
		interactions: newFakeInteractions(),
		rooms:        &fakeRooms{},
		reports:      &fakeReports{},
		tokens:       &fakeTokens{},
		messages:     &fakeMessages{},
		notifier:     &fakeNotifier{},
		bootstrap:    &fakeBootstrapper{},
		revoker:      &fakeRevoker{},
	}
	log := zap.NewNop()
	e.identity = NewIdentityService(e.users)
	e.targets = NewTargetResolver(e.users, e.posts, e.itineraries, e.comments)
	e.chat = NewChatService(e.identity, e.rooms, e.profiles, e.bootstrap, log)
	e.interaction = NewInteractionService(e.identity, e.targets, e.interactions)
	e.report = NewReportService(e.identity, e.targets, e.reports)
	e.comment = NewCommentService(e.identity, e.targets, e.comments, e.profiles, e.notifier)
	e.itinerary = NewItineraryService(e.identity, e.itineraries)
	e.post = NewPostService(e.identity, e.posts)
	e.profile = NewProfileService(e.identity, e.profiles)
	e.fcm = NewFcmTokenService(e.identity, e.tokens)
	e.message = NewMessageService(e.identity, e.messages, e.profiles, e.notifier)
	e.auth = NewAuthService(e.identity, e.revoker)
	return e
}

// user registers a user and returns the principal that authenticates as them.
func (e *testEnv) user(name string) auth.Principal {
	email := name + "@example.com"
	e.users.add("uid-"+name, email)
	return auth.Principal{UID: "uid-" + name, Email: email}
}

// principal authenticates as a user previously registered with user.
func (e *testEnv) principal(name string) auth.Principal {
	return auth.Principal{UID: "uid-" + name, Email: name + "@example.com"}
}
