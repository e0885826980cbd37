// Package service implements the application operations that span several
// stores or must run atomically: registering users, placing and moving
// stickers on post images, and removing posts together with their
// decorations.
//
// Services open transactions with store.RunInTransaction and bind the
// stores they need to the transaction with WithTx.
package service
