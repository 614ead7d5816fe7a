// Package interfaces pins the seams between layers.
//
// Each consumer declares the narrow interface it needs next to its own code
// and the concrete repositories satisfy them implicitly:
//
//   - auth.UserStore: credential lookups and inserts (users.Repository)
//   - auth.TokenResolver: bearer token to user (auth.Service)
//   - http.AuthService: register and login (auth.Service)
//   - http.BookReader: catalogue listing and lookup (books.Repository)
//   - http.BookmarkStore, http.NoteStore, http.PreferencesStore: owner-scoped
//     resources (bookmarks, notes and preferences repositories)
//   - http.Pinger: store health (database.Database)
//   - cli.BookCreator: catalogue seeding (books.Repository)
//
// checks.go turns a drifted signature into a build failure in one place.
package interfaces
