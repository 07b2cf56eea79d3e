// Package apperr defines the stable machine-readable error vocabulary the
// API exposes. Every failure surfaced to a client maps to one of these
// values; internal causes are logged, never leaked.
package apperr

import "net/http"

type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

var (
	ErrServer = &Error{http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong, try again later"}

	ErrNotLoggedIn        = &Error{http.StatusUnauthorized, "NOT_LOGGED_IN", "You are not logged in"}
	ErrInvalidCredentials = &Error{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrUnexpectedBody     = &Error{http.StatusBadRequest, "UNEXPECTED_BODY", "Unexpected fields found in request body"}

	ErrUsernameTaken = &Error{http.StatusConflict, "USERNAME_TAKEN", "This username is already taken"}
	ErrEmailTaken    = &Error{http.StatusConflict, "EMAIL_TAKEN", "This email is already taken"}
	ErrUserNotFound  = &Error{http.StatusNotFound, "USER_NOT_FOUND", "This user does not exist"}

	ErrCommunityNameTaken     = &Error{http.StatusConflict, "COMMUNITY_NAME_TAKEN", "This community name is already taken"}
	ErrCommunityNotFound      = &Error{http.StatusNotFound, "COMMUNITY_NOT_FOUND", "This community does not exist"}
	ErrUserAlreadyInCommunity = &Error{http.StatusConflict, "USER_ALREADY_IN_COMMUNITY", "User is already in this community"}

	ErrPostNotFound    = &Error{http.StatusNotFound, "POST_NOT_FOUND", "Post not found"}
	ErrCommentNotFound = &Error{http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found"}
	ErrMissingMedia    = &Error{http.StatusBadRequest, "MISSING_MEDIA", "Missing media in the request"}

	ErrUnknownVoteState = &Error{http.StatusBadRequest, "UNKNOWN_VOTE_STATE", "Vote state must be UPVOTE or DOWNVOTE"}
	ErrNoVoteToRemove   = &Error{http.StatusBadRequest, "NO_VOTE_TO_REMOVE", "There is no vote to remove"}

	ErrInsufficientPermissions = &Error{http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "You do not have permission to perform this action"}
	ErrMediaPostEditingUnsupported = &Error{http.StatusBadRequest, "MEDIA_POST_EDITING_UNSUPPORTED", "Editing media posts is not supported"}
)
