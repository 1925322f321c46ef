package gqlchat

var Version = "v0.1.0"
