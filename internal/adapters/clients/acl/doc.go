// Package acl is the anti-corruption layer between remote catalog services
// and the domain. External DTOs stay unexported here; callers only ever see
// domain types and domain errors.
//
// HTTP failures are translated as follows:
//
//   - 404 → [domain.ErrNotFound]
//   - 409 → [domain.ErrConflict]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403 → [domain.ErrForbidden]
//   - 429, 5xx, transport errors, open circuit → [domain.ErrUnavailable]
package acl
