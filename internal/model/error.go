package model

import "errors"

var ErrorInvalidUsernameOrPassword = errors.New("invalid username or password")
var ErrorAccountNotConfirmed = errors.New("account not confirmed")
var ErrorDuplicateEmail = errors.New("email already registered")
var ErrorWeakPassword = errors.New("password does not meet the strength policy")
var ErrorInvalidOrUsedToken = errors.New("confirmation link is invalid or has already been used")
var ErrorInvalidSession = errors.New("invalid session")
var ErrorMissingFields = errors.New("missing fields")
var ErrorForbidden = errors.New("forbidden")
var ErrorUserNotFound = errors.New("user not found")
var ErrorChallengeNotFound = errors.New("challenge not found")
var ErrorIdeaNotFound = errors.New("idea not found")
var ErrorConclusionNotFound = errors.New("conclusion not found")
var ErrorDuplicateSubmission = errors.New("challenge already submitted")
var ErrorNegativeScore = errors.New("score cannot become negative")
