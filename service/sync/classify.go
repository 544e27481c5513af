package sync

import "strings"

// Classify maps a remote response-or-failure to taxonomy codes.
// An empty set means success.
//
// Transport failures are classified by message substring: host-resolution
// failures read as the remote site being down, timeouts and refused
// connections as a network problem, anything else conservatively as a
// network problem too. Status 401/403 is an auth failure alone; any other
// non-2xx status reports both site_unreachable and auth_failure because a
// broken endpoint and a broken credential are indistinguishable there.
func Classify(resp *Response, err error) ErrorSet {
	if err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "no such host"), strings.Contains(msg, "resolve"):
			return ErrorSet{ErrSiteUnreachable}
		case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"),
			strings.Contains(msg, "connection refused"):
			return ErrorSet{ErrNetworkProblem}
		default:
			return ErrorSet{ErrNetworkProblem}
		}
	}

	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	if code == 401 || code == 403 {
		return ErrorSet{ErrAuthFailure}
	}
	return ErrorSet{ErrSiteUnreachable, ErrAuthFailure}
}
