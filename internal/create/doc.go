// Runs the end-to-end pipeline that turns a package into distributable
// umbrella bundles.
//
// Stages run strictly in order: validate, configure the generated build
// description, build each destination, merge each product, package. Merges
// start only after every destination has built, because a group missing a
// platform would merge into a bundle that silently under-covers the
// request.
package create
