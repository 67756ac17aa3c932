package render

// 三份模板骨架。标量占位符可出现多次并被全局替换；
// {{SKILLS_LOOP}} 与 {{EXPERIENCE_LOOP}} 每份骨架各出现一次。

const modernSkeleton = `<div class="resume modern-template font-sans text-gray-800">
    <header class="flex items-center gap-6 border-b-4 border-indigo-600 pb-6 mb-6">
        <img src="{{PROFILE_IMAGE}}" alt="{{FULL_NAME}}" class="w-28 h-36 object-cover rounded-md shadow">
        <div>
            <h1 class="text-4xl font-bold tracking-tight">{{FULL_NAME}}</h1>
            <p class="text-gray-600 mt-2">{{EMAIL}} &middot; {{PHONE}}</p>
        </div>
    </header>
    <section class="mb-6">
        <h2 class="text-xl font-semibold text-indigo-600 uppercase tracking-wide mb-3">Education</h2>
        <p class="font-bold">{{COLLEGE}}</p>
        <p class="text-gray-600">{{DEGREE}}, {{PASSING_YEAR}}</p>
    </section>
    <section class="mb-6">
        <h2 class="text-xl font-semibold text-indigo-600 uppercase tracking-wide mb-3">Skills</h2>
        <div class="grid grid-cols-3 gap-2 text-sm">
            {{SKILLS_LOOP}}
        </div>
    </section>
    <section>
        <h2 class="text-xl font-semibold text-indigo-600 uppercase tracking-wide mb-3">Work Experience</h2>
        {{EXPERIENCE_LOOP}}
    </section>
</div>`

const professionalSkeleton = `<div class="resume professional-template font-serif text-gray-900">
    <header class="text-center border-b border-gray-400 pb-4 mb-6">
        <h1 class="text-3xl font-bold uppercase tracking-widest">{{FULL_NAME}}</h1>
        <p class="text-sm text-gray-600 mt-2">{{EMAIL}} | {{PHONE}}</p>
    </header>
    <div class="flex gap-8">
        <aside class="w-1/3">
            <img src="{{PROFILE_IMAGE}}" alt="{{FULL_NAME}}" class="w-full object-cover mb-4 border border-gray-300">
            <h2 class="text-lg font-bold border-b border-gray-400 mb-2">Education</h2>
            <p class="font-semibold">{{DEGREE}}</p>
            <p>{{COLLEGE}}</p>
            <p class="text-sm text-gray-600">Class of {{PASSING_YEAR}}</p>
            <h2 class="text-lg font-bold border-b border-gray-400 mt-6 mb-2">Skills</h2>
            <ul class="list-disc pl-5 space-y-1 text-sm">
                {{SKILLS_LOOP}}
            </ul>
        </aside>
        <main class="w-2/3">
            <h2 class="text-lg font-bold border-b border-gray-400 mb-4">Professional Experience</h2>
            {{EXPERIENCE_LOOP}}
        </main>
    </div>
</div>`

const creativeSkeleton = `<div class="resume creative-template font-sans">
    <div class="flex">
        <aside class="w-1/3 bg-pink-50 p-6 text-gray-700">
            <img src="{{PROFILE_IMAGE}}" alt="{{FULL_NAME}}" class="w-full rounded-lg shadow-lg mb-6">
            <h2 class="text-lg font-bold text-pink-600 mb-2">Contact</h2>
            <p class="text-sm">{{EMAIL}}</p>
            <p class="text-sm mb-6">{{PHONE}}</p>
            <h2 class="text-lg font-bold text-pink-600 mb-2">Skills</h2>
            {{SKILLS_LOOP}}
        </aside>
        <main class="w-2/3 p-6">
            <h1 class="text-4xl font-extrabold text-pink-600">{{FULL_NAME}}</h1>
            <section class="mt-6">
                <h2 class="text-xl font-bold border-b-2 border-pink-200 mb-3">Education</h2>
                <p class="font-semibold">{{DEGREE}}</p>
                <p class="text-gray-600">{{COLLEGE}} &mdash; {{PASSING_YEAR}}</p>
            </section>
            <section class="mt-6 space-y-4">
                <h2 class="text-xl font-bold border-b-2 border-pink-200 mb-3">Experience</h2>
                {{EXPERIENCE_LOOP}}
            </section>
        </main>
    </div>
</div>`
