package iats

import (
	"strconv"
	"strings"
)

// MsgUnknownRejectCode is returned for reject codes missing from the table.
const MsgUnknownRejectCode = "Unknown reject code."

const msgRejectTimeout = "The system has not responded in the time allotted. Call iATS at 1-888-955-5455."

var rejectMessages = map[int]string{
	1:   "Agent code has not been set up on the authorization system. Please call iATS at 1-888-955-5455.",
	2:   "Unable to process transaction. Verify and re-enter credit card information.",
	3:   "Invalid Customer Code.",
	4:   "Incorrect expiration date.",
	5:   "Invalid transaction. Verify and re-enter credit card information.",
	6:   "Please have cardholder call the number on the back of the card.",
	7:   "Lost or stolen card.",
	8:   "Invalid card status.",
	9:   "Restricted card status. Usually on corporate cards restricted to specific sales.",
	10:  "Error. Please verify and re-enter credit card information.",
	11:  "General decline code. Please have client call the number on the back of credit card.",
	12:  "Incorrect CVV2 or expiry date.",
	14:  "The card is over the limit.",
	15:  "General decline code. Please have client call the number on the back of credit card.",
	16:  "Invalid charge card number. Verify and re-enter credit card information.",
	17:  "Unable to authorize transaction. Authorizer needs more information for approval.",
	18:  "Card not supported by institution.",
	19:  "Incorrect CVV2 security code.",
	22:  "Bank timeout. Bank lines may be down or busy. Re-try transaction later.",
	23:  "System error. Re-try transaction later.",
	24:  "Charge card expired.",
	25:  "Capture card. Reported lost or stolen.",
	26:  "Invalid transaction, invalid expiry date. Please confirm and retry transaction.",
	27:  "Please have cardholder call the number on the back of the card.",
	32:  "Invalid charge card number.",
	39:  "Contact iATS 1-888-955-5455.",
	40:  "Invalid card number. Card not supported by iATS.",
	41:  "Invalid expiry date.",
	42:  "CVV2 required.",
	43:  "Incorrect AVS.",
	45:  "Credit card name blocked. Call iATS at 1-888-955-5455.",
	46:  "Card tumbling. Call iATS at 1-888-955-5455.",
	47:  "Name tumbling. Call iATS at 1-888-955-5455.",
	48:  "IP blocked. Call iATS at 1-888-955-5455.",
	49:  "Velocity 1 - IP block. Call iATS at 1-888-955-5455.",
	50:  "Velocity 2 - IP block. Call iATS at 1-888-955-5455.",
	51:  "Velocity 3 - IP block. Call iATS at 1-888-955-5455.",
	52:  "Credit card BIN country blocked. Call iATS at 1-888-955-5455.",
	100: "DO NOT REPROCESS. Call iATS at 1-888-955-5455.",
}

// ResolveReject returns the message for a reject code.
func ResolveReject(code int) string {
	if msg, ok := rejectMessages[code]; ok {
		return msg
	}
	return MsgUnknownRejectCode
}

// ParseRejectCode extracts the reject code from an authorization result. It
// returns false when the result is not a rejection. A rejection without any
// digits yields code 0.
func ParseRejectCode(auth string) (int, bool) {
	if !strings.Contains(auth, "REJECT") {
		return 0, false
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, auth)
	if digits == "" {
		return 0, true
	}

	code, err := strconv.Atoi(digits)
	if err != nil {
		return 0, true
	}
	return code, true
}

// rejectMessage resolves the message for a rejected authorization result.
func rejectMessage(auth string, code int) string {
	if code == 0 && strings.Contains(strings.ToUpper(auth), "TIMEOUT") {
		return msgRejectTimeout
	}
	return ResolveReject(code)
}
