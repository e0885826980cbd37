// Package domain contains the core entities of the posting application:
// users, categories, posts and their images, stickers grouped by sticker
// category, and post decorations (stickers placed on a post image).
// Entities are plain structs with constructors and Validate methods and
// carry no knowledge of how they are persisted.
package domain
