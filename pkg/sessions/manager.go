package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gomodule/redigo/redis"

	. "forum/pkg/common"
	"forum/pkg/logger"
	"forum/pkg/user"
)

const (
	sessionTTL = 90 * 24 * time.Hour
	// Sessions expiring sooner than that are prolonged on use.
	renewWithin = 24 * time.Hour
)

type (
	sessionKey string

	// ConnSource hands out Redis connections. *redis.Pool satisfies it.
	ConnSource interface {
		Get() redis.Conn
	}

	SessionManager struct {
		secret []byte
		redis  ConnSource
		now    func() time.Time
	}

	jwtClaims struct {
		User user.User `json:"user"`
		jwt.StandardClaims
	}
)

const SessionKey sessionKey = "authenticatedUser"

var ErrNoAuth = errors.New("sessions: no session found")

func NewSessionManager(secret string, pool ConnSource) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		redis:  pool,
		now:    time.Now,
	}
}

func NewPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     8,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// Returns logged in user if the user from JWT token is valid
// and the session is valid.
func (sm *SessionManager) UserFromToken(ctx context.Context, authHeader string) (*user.User, error) {
	if authHeader == "" {
		return nil, errors.New("sessions: auth header not found")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sessions: unexpected signing method %v", token.Header["alg"])
			}
			return sm.secret, nil
		})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		return nil, errors.New("sessions: can't cast token to claim")
	}
	if !token.Valid {
		return nil, errors.New("sessions: token is not valid")
	}

	if err := sm.CheckRedis(ctx, claims.User.Id, claims.Id); err != nil {
		return nil, fmt.Errorf("sessions/manager: Redis session is not valid: %w", err)
	}

	return &claims.User, nil
}

// Goes through all user sessions and removes expired ones.
func (sm *SessionManager) CleanupUserSessions(ctx context.Context, userId string) error {
	conn := sm.redis.Get()
	defer conn.Close()

	sessions, err := redis.StringMap(conn.Do("HGETALL", userId))
	if err != nil {
		return fmt.Errorf("sessions/manager: can't HGETALL user sessions: %w", err)
	}

	nowTs := sm.now().Unix()
	for sessId, exp := range sessions {
		expTs, _ := strconv.ParseInt(exp, 10, 64)
		if nowTs <= expTs {
			continue
		}
		if _, err := conn.Do("HDEL", userId, sessId); err != nil {
			return fmt.Errorf("sessions/manager: can't HDEL session %s: %w", sessId, err)
		}
		logger.Log(ctx).Debugf("sessions/manager: session %s removed (expired at %s)", sessId, exp)
	}

	return nil
}

func (sm *SessionManager) CheckRedis(ctx context.Context, userId, sessionId string) error {
	conn := sm.redis.Get()
	defer conn.Close()

	expirationData, err := redis.Bytes(conn.Do("HGET", userId, sessionId))
	if err != nil {
		return fmt.Errorf("sessions/manager: can't HGET session: %w", err)
	}

	expiredTs, _ := strconv.ParseInt(string(expirationData), 10, 64)
	nowTs := sm.now().Unix()
	if nowTs > expiredTs {
		return errors.New("sessions/manager: session has been expired")
	}

	// Keep active users logged in.
	if expiredTs-nowTs < int64(renewWithin.Seconds()) {
		newExp := sm.now().Add(sessionTTL).Unix()
		if err := sm.addToRedis(conn, userId, sessionId, newExp); err != nil {
			return err
		}
		logger.Log(ctx).Debugf("sessions/manager: session %s prolonged", sessionId)
	}

	return nil
}

func (sm *SessionManager) addToRedis(conn redis.Conn, userId, sessionId string, exp int64) error {
	if _, err := conn.Do("HSET", userId, sessionId, exp); err != nil {
		return fmt.Errorf("sessions/manager: failed HSET to Redis: %w", err)
	}
	return nil
}

func (sm *SessionManager) CreateToken(ctx context.Context, u *user.User) (string, error) {
	sessionID := RandStringRunes(10)
	now := sm.now()
	data := jwtClaims{
		User: *u,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(sessionTTL).Unix(),
			IssuedAt:  now.Unix(),
			Id:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, data).SignedString(sm.secret)
	if err != nil {
		return "", fmt.Errorf("sessions/manager: can't sign token: %w", err)
	}

	conn := sm.redis.Get()
	defer conn.Close()
	if err := sm.addToRedis(conn, u.Id, sessionID, data.ExpiresAt); err != nil {
		logger.Log(ctx).Errorf("sessions/manager: can't store session for user %s: %v", u.Id, err)
		return ``, err
	}

	return token, nil
}

func GetAuthUser(ctx context.Context) (*user.User, error) {
	user, ok := ctx.Value(SessionKey).(*user.User)
	if !ok || user == nil {
		return nil, ErrNoAuth
	}
	return user, nil
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, SessionKey, u)
}

// ContextIdentity reports the user the auth middleware stored in the request context.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (*user.User, bool) {
	u, err := GetAuthUser(ctx)
	return u, err == nil
}
