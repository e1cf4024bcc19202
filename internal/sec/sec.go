// Package sec provides password handling for the fittrack web application.
//
// # Password storage
//
// Passwords are stored as bcrypt hashes (default cost, work factor 10) and
// are never persisted or logged in plaintext.
//
// # Components
//
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
//   - [VerifyPassword]: login-time credential check, including the narrow
//     legacy carve-out for the seeded demo account
package sec
