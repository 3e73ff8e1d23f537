package services

// Services defined in this package:
// - AuthService: registration, email verification, login and session lifecycle
// - UserService: profiles, photo uploads and user search
// - FriendService: friend request lifecycle and friend lists
// - PostService: posts, the news feed, likes and comments
// - MessageService: conversations and direct messages
// - SettingsService: user preferences and account deactivation
