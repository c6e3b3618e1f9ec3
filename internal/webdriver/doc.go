// Package webdriver is the collaborator boundary to the remote grid: a
// minimal W3C WebDriver wire-protocol client covering the calls the smoke
// scenarios need (open/close session, navigate, find, read, act, cookies).
// Everything upstream consumes the Client/Session/Element interfaces, so the
// remote end can be replaced with fakes in tests.
package webdriver
