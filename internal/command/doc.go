// Package command builds the argument vectors for yt-dlp and ffmpeg.
//
// Every builder is a pure function: the launch vector, templates and
// defaults are passed in explicitly, and each call returns a fresh
// slice, so identical inputs always give identical commands.
package command
