package result

// Stable error catalogue. Codes are part of the API contract; messages may
// change, codes must not.
//
// Reset-password deliberately reuses the InvalidOTP code for user-not-found
// and no-request-issued so a caller cannot tell which precondition failed.
var (
	UserAlreadyExists = ServiceError{
		Code:    "UserAlreadyExists",
		Message: "User already exists",
	}

	IncorrectUserCredential = ServiceError{
		Code:    "IncorrectUserCredential",
		Message: "Email or password is incorrect",
	}

	InvalidRefreshToken = ServiceError{
		Code:    "InvalidRefreshToken",
		Message: "Invalid refresh token",
	}

	InvalidOTP = ServiceError{
		Code:    "InvalidOTP",
		Message: "Invalid OTP",
	}

	ExpiredOTP = ServiceError{
		Code:    "ExpiredOTP",
		Message: "OTP Expired",
	}

	InvalidPassword = ServiceError{
		Code:    "InvalidPassword",
		Message: "The password you entered doesn't meet the minimum requirements",
	}

	RetryNotAllowedWithinCoolDownPeriod = ServiceError{
		Code:    "RetryNotAllowedWithinCoolDownPeriod",
		Message: "You're attempting to retry verification before the cool-down period. Please wait for some time before retrying.",
	}

	NoEmailVerificationRequestFound = ServiceError{
		Code:    "NoEmailVerificationRequestFound",
		Message: "No verification request found for the given email.",
	}

	EmailVerificationOtpExpired = ServiceError{
		Code:    "EmailVerificationOtpExpired",
		Message: "The OTP has expired.",
	}

	InvalidEmailVerificationOtp = ServiceError{
		Code:    "InvalidEmailVerificationOtp",
		Message: "The OTP you've entered is invalid.",
	}

	UserDoesNotExists = ServiceError{
		Code:    "UserDoesNotExists",
		Message: "User does not exist",
	}

	NoAuthorizationToken = ServiceError{
		Code:    "NoAuthorizationToken",
		Message: "No authorization token provided",
	}

	ValidationError = ServiceError{
		Code:    "ValidationError",
		Message: "Validation Error",
	}

	SomethingWentWrong = ServiceError{
		Code:    "SomethingWentWrong",
		Message: "Something went wrong.",
	}
)
