// Package wxclip extracts structured articles from WeChat public-account
// pages (mp.weixin.qq.com). It fetches article HTML, locates the title,
// author, publish date and body through ordered fallback selectors,
// optionally downloads referenced images and rewrites them to local
// paths, and renders the result as markdown, HTML or JSON artifacts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, fs/).
package wxclip
