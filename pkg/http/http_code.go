// Copyright 2025 Corrigo Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UsernameArePasswordIsRequired = failed(4045, "Username and password are required")
	UserSuspended                 = failed(4046, "User is suspended")
	UserTerminated                = failed(4047, "User is terminated")
	UserLoginCooldown             = failed(4048, "Free users must wait before logging in again")

	EmptyInput                     = failed(4101, "Input text is empty")
	WordLimitExceeded              = failed(4102, "Free users can't submit more than 20 words")
	InsufficientTokens             = failed(4103, "Not enough tokens")
	InsufficientTokensForBlacklist = failed(4104, "Not enough tokens for blacklisted words")
	SubmissionCooldown             = failed(4105, "You must wait before submitting again")

	UnknownComplainedUser = failed(4201, "Complained user does not exist")
	ComplaintNotPending   = failed(4202, "Complaint is not pending")
	AlreadyResponded      = failed(4203, "Complaint already has a response")
	InvalidPenaltyTarget  = failed(4204, "Penalty target must be a party to the complaint")

	InvalidInvitee       = failed(4301, "Invitee must be a paid user")
	InvitationNotFound   = failed(4302, "Invitation not found")
	InvitationNotPending = failed(4303, "Invitation is no longer pending")
	NotCollaborator      = failed(4304, "Not a member of this collaboration")

	CorrectorUnavailable = failed(5102, "Correction service unavailable")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
