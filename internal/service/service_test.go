package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/testutil"
	"syntex_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type services struct {
	users       *UserService
	courses     *CourseService
	enrollments *EnrollmentService
	rewards     *RewardService
	payments    *PaymentService
	batches     *repository.BatchRepository
}

func newServices(t *testing.T) *services {
	db := testutil.NewDB(t)
	batches := repository.NewBatchRepository(db)
	return &services{
		users: NewUserService(repository.NewUserRepository(db), bcrypt.MinCost),
		courses: NewCourseService(
			repository.NewCourseRepository(db),
			repository.NewTopicRepository(db),
			repository.NewContentRepository(db),
			batches,
		),
		enrollments: NewEnrollmentService(repository.NewBatchEnrollRepository(db), repository.NewEnrollCourseRepository(db)),
		rewards:     NewRewardService(repository.NewRewardPointsRepository(db)),
		payments:    NewPaymentService(repository.NewPaymentRepository(db), repository.NewSubscriptionRepository(db)),
		batches:     batches,
	}
}

func (s *services) register(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := s.users.Register(context.Background(), RegisterInput{Email: email, Password1: "s3cret!", Password2: "s3cret!"})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return u
}

func (s *services) course(t *testing.T, author *model.User) *model.Course {
	t.Helper()
	c := &model.Course{Title: "Go Basics", Description: "d", Image: "cover.png", AuthorID: author.ID}
	if err := s.courses.CreateCourse(context.Background(), c); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	return c
}

func TestRegister(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	u := s.register(t, "ada@example.com")
	if u.Password == "s3cret!" || u.Password == "" {
		t.Fatalf("password stored in clear text")
	}
	if u.IsStaff || u.IsSuperuser || !u.IsActive {
		t.Fatalf("flags: staff=%v super=%v active=%v", u.IsStaff, u.IsSuperuser, u.IsActive)
	}

	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{name: "mismatch", in: RegisterInput{Email: "b@example.com", Password1: "a", Password2: "b"}, field: "password2"},
		{name: "empty password", in: RegisterInput{Email: "b@example.com"}, field: "password1"},
		{name: "taken email", in: RegisterInput{Email: "ada@example.com", Password1: "x", Password2: "x"}, field: "email"},
		{name: "bad email", in: RegisterInput{Email: "not-an-email", Password1: "x", Password2: "x"}, field: "email"},
	}
	for _, tt := range tests {
		_, err := s.users.Register(ctx, tt.in)
		var verr *util.ValidationError
		if !errors.As(err, &verr) || !verr.HasField(tt.field) {
			t.Errorf("%s: want %s validation error got %v", tt.name, tt.field, err)
		}
	}
}

func TestCreateSuperuser(t *testing.T) {
	s := newServices(t)
	u, err := s.users.CreateSuperuser(context.Background(), "root@example.com", "toor")
	if err != nil {
		t.Fatalf("CreateSuperuser: %v", err)
	}
	if !u.IsStaff || !u.IsSuperuser {
		t.Fatalf("flags: staff=%v super=%v", u.IsStaff, u.IsSuperuser)
	}
}

func TestAuthenticate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.register(t, "ada@example.com")

	got, err := s.users.Authenticate(ctx, "ada@EXAMPLE.com", "s3cret!")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.LastLogin == nil {
		t.Fatalf("last_login not set")
	}

	if _, err := s.users.Authenticate(ctx, "ada@example.com", "wrong"); !errors.Is(err, util.ErrInvalidLogin) {
		t.Fatalf("wrong password: want=%v got=%v", util.ErrInvalidLogin, err)
	}
	if _, err := s.users.Authenticate(ctx, "nobody@example.com", "s3cret!"); !errors.Is(err, util.ErrInvalidLogin) {
		t.Fatalf("unknown email: want=%v got=%v", util.ErrInvalidLogin, err)
	}

	inactive := false
	if _, err := s.users.UpdateProfile(ctx, u.ID, ProfileUpdate{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := s.users.Authenticate(ctx, "ada@example.com", "s3cret!"); !errors.Is(err, util.ErrUserInactive) {
		t.Fatalf("inactive user: want=%v got=%v", util.ErrUserInactive, err)
	}

	if err := s.users.SetPassword(ctx, u.ID, "n3w"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	active := true
	if _, err := s.users.UpdateProfile(ctx, u.ID, ProfileUpdate{IsActive: &active}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := s.users.Authenticate(ctx, "ada@example.com", "n3w"); err != nil {
		t.Fatalf("Authenticate with new password: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.register(t, "ada@example.com")

	name, mobile := "Ada Lovelace", "9876543210"
	dob := datatypes.Date(time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC))
	got, err := s.users.UpdateProfile(ctx, u.ID, ProfileUpdate{Name: &name, MobileNo: &mobile, DOB: &dob})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != name || got.MobileNo != mobile {
		t.Fatalf("profile: got name=%q mobile=%q", got.Name, got.MobileNo)
	}

	tooLong := "98765432101"
	if _, err := s.users.UpdateProfile(ctx, u.ID, ProfileUpdate{MobileNo: &tooLong}); !util.IsValidation(err) {
		t.Fatalf("11 digit mobile: want validation error got %v", err)
	}
	if _, err := s.users.UpdateProfile(ctx, "missing", ProfileUpdate{Name: &name}); !util.IsNotFound(err) {
		t.Fatalf("missing user: want not found got %v", err)
	}
}

func TestDeleteUserAfterTransfer(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	author := s.register(t, "author@example.com")
	heir := s.register(t, "heir@example.com")
	course := s.course(t, author)
	b := &model.Batch{CourseID: course.ID, Name: "Evening", TeacherID: author.ID, StartDate: datatypes.Date(time.Now())}
	if err := s.batches.Create(ctx, b); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	if err := s.users.Delete(ctx, author.ID); !util.IsReferentialIntegrity(err) {
		t.Fatalf("delete author: want referential integrity error got %v", err)
	}

	courses, batches, err := s.courses.TransferOwnership(ctx, author.ID, heir.ID)
	if err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}
	if courses != 1 || batches != 1 {
		t.Fatalf("moved: want courses=1 batches=1 got courses=%d batches=%d", courses, batches)
	}
	if err := s.users.Delete(ctx, author.ID); err != nil {
		t.Fatalf("Delete after transfer: %v", err)
	}

	users, err := s.users.List(ctx)
	if err != nil || len(users) != 1 || users[0].Email != "heir@example.com" {
		t.Fatalf("List: got %v err=%v", users, err)
	}
}

func TestCheckContentPayload(t *testing.T) {
	tests := []struct {
		name    string
		content model.Content
		fields  []string
	}{
		{name: "text ok", content: model.Content{ContentType: model.ContentText, Text: "body"}},
		{name: "blog uses text", content: model.Content{ContentType: model.ContentBlog, Text: "post"}},
		{name: "video ok", content: model.Content{ContentType: model.ContentVideo, Video: "https://cdn.example.com/v.mp4"}},
		{name: "file ok", content: model.Content{ContentType: model.ContentFile, File: "slides.pdf"}},
		{name: "video missing", content: model.Content{ContentType: model.ContentVideo}, fields: []string{"video"}},
		{name: "file with text", content: model.Content{ContentType: model.ContentFile, File: "a.pdf", Text: "x"}, fields: []string{"text"}},
		{name: "text with video and file", content: model.Content{ContentType: model.ContentText, Text: "x", Video: "https://v", File: "f"}, fields: []string{"video", "file"}},
		{name: "unknown type", content: model.Content{ContentType: "audio"}, fields: []string{"content_type"}},
	}
	for _, tt := range tests {
		err := CheckContentPayload(&tt.content)
		if len(tt.fields) == 0 {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		var verr *util.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: want ValidationError got %v", tt.name, err)
			continue
		}
		if len(verr.Fields) != len(tt.fields) {
			t.Errorf("%s: fields want=%v got=%v", tt.name, tt.fields, verr.Fields)
		}
		for _, f := range tt.fields {
			if !verr.HasField(f) {
				t.Errorf("%s: missing field error %s", tt.name, f)
			}
		}
	}
}

func TestOutline(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	course := s.course(t, s.register(t, "author@example.com"))

	second := &model.Topic{CourseID: course.ID, Title: "Maps", Description: "d", Order: 2}
	first := &model.Topic{CourseID: course.ID, Title: "Slices", Description: "d", Order: 1}
	empty := &model.Topic{CourseID: course.ID, Title: "Wrap up", Description: "d", Order: 3}
	for _, tp := range []*model.Topic{second, first, empty} {
		if err := s.courses.AddTopic(ctx, tp); err != nil {
			t.Fatalf("AddTopic: %v", err)
		}
	}
	contents := []*model.Content{
		{TopicID: first.ID, ContentType: model.ContentText, Title: "b", Text: "x", Order: 2},
		{TopicID: first.ID, ContentType: model.ContentVideo, Title: "a", Video: "https://cdn.example.com/a.mp4", Order: 1},
		{TopicID: second.ID, ContentType: model.ContentFile, Title: "c", File: "c.pdf"},
	}
	for _, c := range contents {
		if err := s.courses.AddContent(ctx, c); err != nil {
			t.Fatalf("AddContent %s: %v", c.Title, err)
		}
	}
	bad := &model.Content{TopicID: first.ID, ContentType: model.ContentVideo, Title: "bad", Text: "x"}
	if err := s.courses.AddContent(ctx, bad); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("AddContent mismatched payload: want validation error got %v", err)
	}

	outline, err := s.courses.Outline(ctx, course.ID)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(outline.Topics) != 3 {
		t.Fatalf("topics: want=3 got=%d", len(outline.Topics))
	}
	if outline.Topics[0].Topic.Title != "Slices" || outline.Topics[1].Topic.Title != "Maps" {
		t.Fatalf("topic order: got %q, %q", outline.Topics[0].Topic.Title, outline.Topics[1].Topic.Title)
	}
	got := outline.Topics[0].Contents
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "b" {
		t.Fatalf("first topic contents: got %v", got)
	}
	if len(outline.Topics[2].Contents) != 0 {
		t.Fatalf("empty topic contents: got %v", outline.Topics[2].Contents)
	}

	if _, err := s.courses.Outline(ctx, "missing"); !util.IsNotFound(err) {
		t.Fatalf("missing course: want not found got %v", err)
	}

	removed, err := s.courses.DeleteCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if removed["topics"] != 3 || removed["contents"] != 3 {
		t.Fatalf("removed: got %v", removed)
	}
}

func TestEnrollment(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	author := s.register(t, "author@example.com")
	student := s.register(t, "student@example.com")
	course := s.course(t, author)

	first, err := s.enrollments.EnrollInCourse(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("EnrollInCourse: %v", err)
	}
	if err := s.enrollments.Deactivate(ctx, first.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	again, err := s.enrollments.EnrollInCourse(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("EnrollInCourse again: %v", err)
	}
	if again.ID != first.ID || !again.Active {
		t.Fatalf("re-enroll: want same active record got id=%s active=%v", again.ID, again.Active)
	}

	for _, p := range []int{-1, 101} {
		if _, err := s.enrollments.UpdateProgress(ctx, first.ID, p); !errors.Is(err, util.ErrValidation) {
			t.Errorf("progress %d: want validation error got %v", p, err)
		}
	}
	updated, err := s.enrollments.UpdateProgress(ctx, first.ID, 100)
	if err != nil || updated.Progress != 100 {
		t.Fatalf("UpdateProgress: got %v err=%v", updated, err)
	}

	b := &model.Batch{CourseID: course.ID, Name: "Morning", TeacherID: author.ID, StartDate: datatypes.Date(time.Now())}
	if err := s.batches.Create(ctx, b); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	joined, err := s.enrollments.JoinBatch(ctx, student.ID, b.ID)
	if err != nil {
		t.Fatalf("JoinBatch: %v", err)
	}
	if _, err := s.enrollments.SetBatchStatus(ctx, joined.ID, model.EnrollLeft); err != nil {
		t.Fatalf("SetBatchStatus: %v", err)
	}
	if _, err := s.enrollments.SetBatchStatus(ctx, joined.ID, "paused"); !util.IsValidation(err) {
		t.Fatalf("bad status: want validation error got %v", err)
	}
	rejoined, err := s.enrollments.JoinBatch(ctx, student.ID, b.ID)
	if err != nil {
		t.Fatalf("JoinBatch again: %v", err)
	}
	if rejoined.ID != joined.ID || rejoined.Status != model.EnrollActive {
		t.Fatalf("rejoin: got id=%s status=%s", rejoined.ID, rejoined.Status)
	}
}

func TestRewards(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.register(t, "learner@example.com")

	if _, err := s.rewards.Earn(ctx, u.ID, 30, "quiz"); err != nil {
		t.Fatalf("Earn: %v", err)
	}
	if _, err := s.rewards.Spend(ctx, u.ID, 20, "coupon"); err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if _, err := s.rewards.Spend(ctx, u.ID, 11, "coupon"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("overspend: want validation error got %v", err)
	}
	if _, err := s.rewards.Earn(ctx, u.ID, -1, ""); !util.IsValidation(err) {
		t.Fatalf("negative earn: want validation error got %v", err)
	}

	balance, err := s.rewards.Balance(ctx, u.ID)
	if err != nil || balance != 10 {
		t.Fatalf("Balance: want=10 got=%d err=%v", balance, err)
	}
	history, err := s.rewards.History(ctx, u.ID)
	if err != nil || len(history) != 2 {
		t.Fatalf("History: want=2 got=%d err=%v", len(history), err)
	}
}

func TestPayments(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	author := s.register(t, "author@example.com")
	buyer := s.register(t, "buyer@example.com")
	course := s.course(t, author)

	sub, err := s.payments.Subscribe(ctx, model.PlanStandard)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Price != 2499 || sub.Duration != 90*24*time.Hour {
		t.Fatalf("standard terms: got price=%v duration=%v", sub.Price, sub.Duration)
	}
	if _, err := s.payments.Subscribe(ctx, "gold"); !util.IsValidation(err) {
		t.Fatalf("unknown plan: want validation error got %v", err)
	}

	byCourse, err := s.payments.CreateOrder(ctx, buyer.ID, CourseTarget{CourseID: course.ID}, "order_course")
	if err != nil {
		t.Fatalf("CreateOrder course: %v", err)
	}
	if byCourse.CourseID == nil || byCourse.SubscriptionID != nil || byCourse.Status != model.PaymentPending {
		t.Fatalf("course order: got %+v", byCourse)
	}
	if _, err := s.payments.CreateOrder(ctx, buyer.ID, SubscriptionTarget{SubscriptionID: sub.ID}, "order_sub"); err != nil {
		t.Fatalf("CreateOrder subscription: %v", err)
	}
	if _, err := s.payments.CreateOrder(ctx, buyer.ID, nil, "order_none"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("no target: want validation error got %v", err)
	}

	paid, err := s.payments.RecordResult(ctx, GatewayResult{OrderID: "order_course", PaymentID: "pay_1", Signature: "sig", Status: model.PaymentSuccess})
	if err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if paid.PaymentID == nil || *paid.PaymentID != "pay_1" || paid.String() != "order_course-success" {
		t.Fatalf("paid: got %+v", paid)
	}
	if _, err := s.payments.RecordResult(ctx, GatewayResult{OrderID: "order_course", Status: model.PaymentFailed}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("success -> failed: want validation error got %v", err)
	}
	if _, err := s.payments.RecordResult(ctx, GatewayResult{OrderID: "order_course", Status: model.PaymentRefunded}); err != nil {
		t.Fatalf("success -> refunded: %v", err)
	}
	if _, err := s.payments.RecordResult(ctx, GatewayResult{OrderID: "missing", Status: model.PaymentSuccess}); !util.IsNotFound(err) {
		t.Fatalf("unknown order: want not found got %v", err)
	}

	list, err := s.payments.ListByUser(ctx, buyer.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByUser: want=2 got=%d err=%v", len(list), err)
	}
}
