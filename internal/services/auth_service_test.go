package services

import (
	"strings"
	"testing"
)

type authStubStore struct {
	users []*User
}

func (s *authStubStore) FindUserByUsername(username string) (*User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *authStubStore) CountUsers() (int, error) { return len(s.users), nil }

func (s *authStubStore) AddFirstUser(u *User) error {
	if len(s.users) > 0 {
		return ErrAdminExists
	}
	s.users = append(s.users, u)
	return nil
}

func newTestAuthService(store *authStubStore) *AuthService {
	svc := NewAuthService(store, func(uid, role string) (string, error) {
		return "token-" + uid + "-" + role, nil
	})
	return svc
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := &authStubStore{}
	svc := newTestAuthService(store)

	if has, _ := svc.HasUser(); has {
		t.Fatalf("fresh store should have no user")
	}
	if err := svc.Register("admin", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if has, _ := svc.HasUser(); !has {
		t.Fatalf("HasUser should report true after register")
	}
	u := store.users[0]
	if u.Role != RoleAdmin {
		t.Fatalf("registered role = %q", u.Role)
	}
	if !strings.HasPrefix(u.ID, "u") || len(u.ID) != 8 {
		t.Fatalf("unexpected user id %q", u.ID)
	}
	if string(u.PassHash) == "s3cret" {
		t.Fatalf("password stored in the clear")
	}

	res, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "token-"+u.ID+"-"+RoleAdmin {
		t.Fatalf("unexpected token %q", res.Token)
	}
	if res.User.Username != "admin" || res.User.Role != RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", res.User)
	}
}

func TestAuthRegisterSecondAdminConflict(t *testing.T) {
	store := &authStubStore{}
	svc := newTestAuthService(store)
	if err := svc.Register("admin", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := svc.Register("other", "pw")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("second admin must not be stored")
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newTestAuthService(&authStubStore{})
	for _, c := range [][2]string{{"", "pw"}, {"admin", ""}, {"  ", "pw"}, {"admin", "   "}} {
		err := svc.Register(c[0], c[1])
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("Register(%q, %q) = %v, want invalid error", c[0], c[1], err)
		}
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	store := &authStubStore{}
	svc := newTestAuthService(store)
	if err := svc.Register("admin", "right"); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, c := range [][2]string{{"admin", "wrong"}, {"nobody", "right"}} {
		_, err := svc.Login(c[0], c[1])
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorUnauthorized {
			t.Fatalf("Login(%q, %q) = %v, want unauthorized", c[0], c[1], err)
		}
		if se.Message != "invalid credentials" {
			t.Fatalf("message %q leaks which check failed", se.Message)
		}
	}
}

func TestAuthLoginCaseInsensitiveUsername(t *testing.T) {
	store := &authStubStore{}
	svc := newTestAuthService(store)
	if err := svc.Register("Admin", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login("admin", "pw"); err != nil {
		t.Fatalf("login with different case: %v", err)
	}
}
